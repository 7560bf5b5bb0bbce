// Package engine implements the grid-collision simulation behind the balls
// game: the cell grid, per-step bounce resolution, board regeneration, the
// shot scheduler and the binary save record.
//
// The package is pure and synchronous. It never logs, never does I/O and
// never suspends; callers drive it one Tick at a time and must serialize
// access to a Board themselves.
package engine

import "math"

// World geometry. All positions are in world units; the board is
// Columns*Side wide and Rows*Side tall with the origin at the top-left.
const (
	Columns = 6
	Rows    = 8

	Side   = 200.0 // Cell edge length
	Radius = 20.0  // Ball radius
	Width  = Side * Columns
	Height = Side * Rows

	Speed        = 50.0  // Ball speed per tick
	PreviewSpeed = 0.5   // Ghost-shot speed used by UpdatePreview
	TileSize     = 100.0 // Visual diameter of a special tile

	// TriggerRadius is how close a ball center must be to a special tile's
	// center for the tile to fire.
	TriggerRadius = TileSize/2 + Radius + 10

	minVerticalSpeed = 1.0
)

// Vec2 is a 2D point or vector in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length.
// The zero vector normalizes to straight up so launches never produce NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{0, -1}
	}
	return Vec2{v.X / l, v.Y / l}
}

// FromAngle returns a vector of the given length pointing at theta radians
// from the +X axis (Y grows downward).
func FromAngle(theta, length float64) Vec2 {
	return Vec2{length * math.Cos(theta), length * math.Sin(theta)}
}

// StartY is the fixed vertical anchor of every launch point.
func StartY() float64 {
	return Height - Radius
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
