package engine

import "math"

// SideSet is a set of cell boundaries, used both for "which sides of this cell
// are walls" and "which sides is the ball touching".
type SideSet uint8

const (
	Left   SideSet = 1 << iota // x- boundary
	Top                     // y- boundary
	Right                   // x+ boundary
	Bottom                  // y+ boundary

	// Arc bits: the diagonal neighbor is a block and the corner is convex,
	// so the ball deflects around a rounded corner instead of a flat side.
	ArcLeftTop
	ArcRightTop
	ArcLeftBottom
	ArcRightBottom
)

// Corner pairs of straight sides.
const (
	LeftTop     = Left | Top
	RightTop    = Right | Top
	LeftBottom  = Left | Bottom
	RightBottom = Right | Bottom
)

// Has reports whether every bit of o is set in s.
func (s SideSet) Has(o SideSet) bool {
	return s&o == o
}

// Any reports whether at least one bit of o is set in s.
func (s SideSet) Any(o SideSet) bool {
	return s&o != 0
}

// String lists the set bits, e.g. "L|T|arcRB".
func (s SideSet) String() string {
	if s == 0 {
		return "-"
	}
	names := []struct {
		bit  SideSet
		name string
	}{
		{Left, "L"}, {Top, "T"}, {Right, "R"}, {Bottom, "B"},
		{ArcLeftTop, "arcLT"}, {ArcRightTop, "arcRT"},
		{ArcLeftBottom, "arcLB"}, {ArcRightBottom, "arcRB"},
	}
	out := ""
	for _, n := range names {
		if s&n.bit == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// touching returns the straight sides of the cell [ls,rs]x[ts,bs] that a
// ball at pos is touching or beyond. The bottom of the board is never
// reported: reaching it is an exit, not a bounce.
func touching(pos Vec2, ls, ts, rs, bs float64) SideSet {
	var s SideSet
	x := math.Round(pos.X)
	y := math.Round(pos.Y)
	if x-Radius <= ls {
		s |= Left
	}
	if x+Radius > rs {
		s |= Right
	}
	if y-Radius <= ts {
		s |= Top
	}
	if bs < Height && y+Radius > bs {
		s |= Bottom
	}
	return s
}
