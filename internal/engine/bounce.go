package engine

import (
	"math"
)

// Ball is one in-flight ball. Balls belong to a Ticker and never outlive
// the shot that spawned them.
type Ball struct {
	Pos Vec2
	Vel Vec2
}

// cellOf returns the grid cell containing p, clamped to the grid.
func cellOf(p Vec2) (row, col int) {
	col = clampInt(int(math.Floor(math.Round(p.X)/Side)), 0, Columns-1)
	row = clampInt(int(math.Floor(math.Round(p.Y)/Side)), 0, Rows-1)
	return row, col
}

// bounce advances ball by one velocity step, resolving special tiles, flat
// and rounded-corner bounces against the cell the ball started in. It
// reports true when the ball is retired, either through the bottom edge or
// by a RemoveBlock tile.
func (b *Board) bounce(ball *Ball) bool {
	r, c := cellOf(ball.Pos)
	ls := float64(c) * Side
	rs := ls + Side
	ts := float64(r) * Side
	bs := ts + Side

	before := b.grid.walls(r, c)

	if cell := &b.grid[r][c]; cell.IsSpecial() {
		center := Vec2{ls + Side/2, ts + Side/2}
		if ball.Pos.Sub(center).Len() <= TriggerRadius {
			switch cell.special {
			case SpawnBall:
				b.ballsPerShot++
				*cell = EmptyCell()
			case RemoveBlock:
				*cell = EmptyCell()
				return true
			case Randomize, RandomizeSpent:
				ball.Vel = b.randomHeading(ball.Vel)
				*cell = SpecialCell(RandomizeSpent)
			case DoubleScore:
				b.doubleScore = true
				*cell = EmptyCell()
			}
		}
	}

	ball.Pos = ball.Pos.Add(ball.Vel)
	after := touching(ball.Pos, ls, ts, rs, bs)

	// A side bounces only if it is a wall and the ball reached it after the
	// move. Horizontal and vertical are resolved independently.
	if before.Has(Left) && after.Has(Left) {
		reflect(&ball.Vel.X, &ball.Pos.X, ls, -Radius)
		b.hit(r, c-1)
	} else if before.Has(Right) && after.Has(Right) {
		reflect(&ball.Vel.X, &ball.Pos.X, rs, Radius)
		b.hit(r, c+1)
	}

	if before.Has(Top) && after.Has(Top) {
		reflect(&ball.Vel.Y, &ball.Pos.Y, ts, -Radius)
		b.hit(r-1, c)
	} else if before.Has(Bottom) && ball.Pos.Y+Radius >= Height && ball.Vel.Y > 0 {
		return true
	} else if before.Has(Bottom) && after.Has(Bottom) {
		reflect(&ball.Vel.Y, &ball.Pos.Y, bs, Radius)
		b.hit(r+1, c)
	}

	switch {
	case before.Has(ArcLeftTop) && after.Has(LeftTop):
		reflectArc(ball, Vec2{ls + Radius, ts + Radius}, false)
		b.hit(r-1, c-1)
	case before.Has(ArcRightTop) && after.Has(RightTop):
		reflectArc(ball, Vec2{rs - Radius, ts + Radius}, true)
		b.hit(r-1, c+1)
	case before.Has(ArcLeftBottom) && after.Has(LeftBottom):
		reflectArc(ball, Vec2{ls + Radius, bs - Radius}, true)
		b.hit(r+1, c-1)
	case before.Has(ArcRightBottom) && after.Has(RightBottom):
		reflectArc(ball, Vec2{rs - Radius, bs - Radius}, false)
		b.hit(r+1, c+1)
	}

	if math.Abs(ball.Vel.Y) < minVerticalSpeed {
		if ball.Vel.Y > 0 {
			ball.Vel.Y = minVerticalSpeed
		} else {
			ball.Vel.Y = -minVerticalSpeed
		}
	}
	return false
}

// randomHeading draws a new direction at shot speed, centered on the
// horizontal direction opposite to the ball's current heading.
func (b *Board) randomHeading(v Vec2) Vec2 {
	mean := math.Pi
	if v.X < 0 {
		mean = 0
	}
	return FromAngle(normal(b.rng, mean, math.Pi/2), Speed)
}

// reflect negates one velocity axis and mirrors the position across wall,
// where edge is the signed offset from the ball center to its leading edge.
func reflect(vel, pos *float64, wall, edge float64) {
	*vel = -*vel
	*pos += 2 * (wall - (*pos + edge))
}

// reflectArc deflects the ball around the inner circle centered at center
// by swapping the x/y offsets; neg selects the anti-diagonal corners.
func reflectArc(ball *Ball, center Vec2, neg bool) {
	off := center.Sub(ball.Pos)
	swapped := Vec2{off.Y, off.X}
	vel := Vec2{-ball.Vel.Y, -ball.Vel.X}
	if neg {
		swapped = swapped.Neg()
		vel = vel.Neg()
	}
	ball.Pos = center.Add(swapped)
	ball.Vel = vel
}
