package engine

import "math"

// Grid is the fixed Rows x Columns cell matrix, indexed [row][column].
type Grid [Rows][Columns]Cell

// inBounds reports whether (r, c) addresses a real cell.
func inBounds(r, c int) bool {
	return r >= 0 && r < Rows && c >= 0 && c < Columns
}

// isWall reports whether the straight side toward (r, c) stops a ball:
// a block, or no cell at all.
func (g *Grid) isWall(r, c int) bool {
	if !inBounds(r, c) {
		return true
	}
	return g[r][c].IsBlock()
}

// isArc reports whether the diagonal cell (r, c) is a block. A missing
// diagonal never counts.
func (g *Grid) isArc(r, c int) bool {
	if !inBounds(r, c) {
		return false
	}
	return g[r][c].IsBlock()
}

// walls computes the boundary flags of cell (r, c) from its neighbors.
func (g *Grid) walls(r, c int) SideSet {
	var s SideSet
	if g.isWall(r, c-1) {
		s |= Left
	}
	if g.isWall(r-1, c) {
		s |= Top
	}
	if g.isWall(r, c+1) {
		s |= Right
	}
	if g.isWall(r+1, c) {
		s |= Bottom
	}
	// A corner only becomes an arc when neither of its straight sides is a
	// wall; otherwise the flat bounce already owns that corner and the
	// diagonal block would be hit twice.
	if g.isArc(r-1, c-1) && !s.Any(LeftTop) {
		s |= ArcLeftTop
	}
	if g.isArc(r-1, c+1) && !s.Any(RightTop) {
		s |= ArcRightTop
	}
	if g.isArc(r+1, c-1) && !s.Any(LeftBottom) {
		s |= ArcLeftBottom
	}
	if g.isArc(r+1, c+1) && !s.Any(RightBottom) {
		s |= ArcRightBottom
	}
	return s
}

// Board is the persistent state of one round. It outlives every shot; a
// Ticker only borrows it for the duration of each Tick.
type Board struct {
	grid          Grid
	difficulty    Difficulty
	rng           Source
	score         uint64
	startX        float64
	startVelocity Vec2
	sample        Vec2
	ballsPerShot  int
	doubleScore   bool
}

// NewBoard returns an empty board at the given difficulty. The first row is
// not generated until Reset is called.
func NewBoard(d Difficulty, src Source) *Board {
	if src == nil {
		src = NewSource(1)
	}
	b := &Board{rng: src}
	b.Init(d)
	return b
}

// Init starts a fresh round: empty grid, one ball per shot, centered launch
// point, zero score.
func (b *Board) Init(d Difficulty) {
	b.grid = Grid{}
	b.difficulty = d
	b.score = 0
	b.startX = Width / 2
	b.startVelocity = Vec2{}
	b.sample = b.StartPoint()
	b.ballsPerShot = 1
	b.doubleScore = false
}

// SetSource replaces the random source.
func (b *Board) SetSource(src Source) {
	b.rng = src
}

// Grid returns a copy of the cell matrix.
func (b *Board) Grid() Grid { return b.grid }

// Cell returns the cell at (row, col). Out-of-range coordinates yield an
// empty cell.
func (b *Board) Cell(row, col int) Cell {
	if !inBounds(row, col) {
		return EmptyCell()
	}
	return b.grid[row][col]
}

// SetCell overwrites one cell. Out-of-range coordinates are ignored.
func (b *Board) SetCell(row, col int, c Cell) {
	if !inBounds(row, col) {
		return
	}
	b.grid[row][col] = c
}

// Difficulty returns the round's difficulty.
func (b *Board) Difficulty() Difficulty { return b.difficulty }

// Score returns the cumulative round score.
func (b *Board) Score() uint64 { return b.score }

// BallsPerShot returns how many balls the next shot fires.
func (b *Board) BallsPerShot() int { return b.ballsPerShot }

// DoubleScore reports whether the running shot consumed a double-score tile.
func (b *Board) DoubleScore() bool { return b.doubleScore }

// StartX returns the horizontal launch position.
func (b *Board) StartX() float64 { return b.startX }

// StartPoint returns the launch position.
func (b *Board) StartPoint() Vec2 {
	return Vec2{b.startX, StartY()}
}

// StartVelocity returns the launch vector of the current/last shot.
func (b *Board) StartVelocity() Vec2 { return b.startVelocity }

// Sample returns the last preview stopping point.
func (b *Board) Sample() Vec2 { return b.sample }

// SampleVisible reports whether the preview point lies inside the
// playable rectangle.
func (b *Board) SampleVisible() bool {
	p := b.sample
	return p.X >= Radius && p.X <= Width-Radius && p.Y >= Radius && p.Y <= Height-Radius
}

// IsOver reports whether the bottom row holds any block.
func (b *Board) IsOver() bool {
	for c := 0; c < Columns; c++ {
		if b.grid[Rows-1][c].IsBlock() {
			return true
		}
	}
	return false
}

// LaunchVector returns the direction from the launch point to target,
// scaled to speed. The vertical component is clamped to at most
// -speed/Speed so no shot is flatter than that.
func (b *Board) LaunchVector(target Vec2, speed float64) Vec2 {
	v := target.Sub(b.StartPoint()).Normalize().Scale(speed)
	if limit := -speed / Speed; v.Y > limit {
		v.Y = limit
	}
	return v
}

// UpdatePreview traces a slow ghost shot toward target and stores where it
// first leaves the board sideways, rises past the top, or runs into a
// block with either of its upper corners.
func (b *Board) UpdatePreview(target Vec2) {
	v := b.LaunchVector(target, PreviewSpeed)
	p := b.StartPoint()
	for {
		p = p.Add(v)
		if p.X < Radius || p.X > Width-Radius || p.Y < Radius {
			break
		}
		r := int(math.Round(p.Y-Radius) / Side)
		c1 := int(math.Round(p.X-Radius) / Side)
		c2 := int(math.Round(p.X+Radius) / Side)
		if !b.previewFree(r, c1) || !b.previewFree(r, c2) {
			break
		}
	}
	b.sample = p.Sub(v)
}

func (b *Board) previewFree(r, c int) bool {
	return inBounds(r, c) && !b.grid[r][c].IsBlock()
}

// Start records the launch vector toward target and returns the ticker for
// the new shot. The caller must Consume it once Tick reports the end.
func (b *Board) Start(target Vec2) *Ticker {
	b.startVelocity = b.LaunchVector(target, Speed)
	return newTicker(b.ballsPerShot)
}

// hit registers a strike on the block at (r, c). Strikes toward the outer
// walls land outside the grid and are ignored.
func (b *Board) hit(r, c int) {
	if !inBounds(r, c) {
		return
	}
	cell := &b.grid[r][c]
	if !cell.IsBlock() {
		panic("engine: hit on a cell that is not a block")
	}
	if cell.count <= 1 {
		*cell = EmptyCell()
	} else {
		cell.count--
	}
	b.score++
}
