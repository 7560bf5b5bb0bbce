package engine

import "math"

// Row generation probabilities.
const (
	blockChance       = 0.6
	randomizeChance   = 0.5
	removeChance      = 0.2
	doubleScoreChance = 0.2
	spawnChance       = 0.5

	// maxBallsPerShot stops SpawnBall tiles from appearing once a shot is
	// this large.
	maxBallsPerShot = math.MaxInt32 / 2
)

// Reset shifts every row down by one and generates a fresh top row. It
// returns false, leaving row 0 untouched, when the shift pushed a block
// into the bottom row: the round is over.
func (b *Board) Reset() bool {
	b.shift()
	if b.IsOver() {
		return false
	}
	b.generateRow()
	return true
}

// shift copies each row onto the one below it. Spent Randomize tiles do
// not travel; they become empty.
func (b *Board) shift() {
	for r := Rows - 1; r > 0; r-- {
		for c := 0; c < Columns; c++ {
			cell := b.grid[r-1][c]
			if cell.IsSpecial() && cell.special == RandomizeSpent {
				cell = EmptyCell()
			}
			b.grid[r][c] = cell
		}
	}
}

// blockDistribution returns the mean and standard deviation of new block
// values for n balls per shot.
func blockDistribution(d Difficulty, n int) (mean, sigma float64) {
	fn := float64(n)
	switch d {
	case Normal:
		return fn, fn / 3
	case Hard:
		return fn * 1.5, fn / 2
	case Compete:
		return math.Pow(fn, 1.1), fn / 3
	default:
		return fn / 2, fn / 6
	}
}

// generateRow fills row 0 with blocks, then drops up to four special tiles
// at independent random columns. Later tiles overwrite earlier ones.
func (b *Board) generateRow() {
	mean, sigma := blockDistribution(b.difficulty, b.ballsPerShot)
	for c := 0; c < Columns; c++ {
		b.grid[0][c] = EmptyCell()
		if b.rng.Float64() < blockChance {
			v := math.Round(normal(b.rng, mean, sigma))
			if v >= 1 {
				b.grid[0][c] = CountCell(int32(math.Min(v, math.MaxInt32)))
			}
		}
	}

	if b.rng.Float64() < randomizeChance {
		b.grid[0][b.rng.IntN(Columns)] = SpecialCell(Randomize)
	}
	if b.rng.Float64() < removeChance {
		b.grid[0][b.rng.IntN(Columns)] = SpecialCell(RemoveBlock)
	}
	if b.rng.Float64() < doubleScoreChance {
		b.grid[0][b.rng.IntN(Columns)] = SpecialCell(DoubleScore)
	}
	if b.ballsPerShot < maxBallsPerShot &&
		(b.difficulty == Compete || b.rng.Float64() < spawnChance) {
		b.grid[0][b.rng.IntN(Columns)] = SpecialCell(SpawnBall)
	}
}
