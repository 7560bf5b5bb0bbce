package engine

import (
	"math"
	"testing"
)

func validTopCell(c Cell) bool {
	switch c.Kind() {
	case KindEmpty:
		return true
	case KindCount:
		return c.Count() >= 1
	case KindSpecial:
		switch c.Special() {
		case SpawnBall, RemoveBlock, Randomize, DoubleScore:
			return true
		}
	}
	return false
}

func TestResetGeneratesValidRows(t *testing.T) {
	const seeds = 10000
	for seed := int64(0); seed < seeds; seed++ {
		d := Difficulties[seed%int64(len(Difficulties))]
		b := NewBoard(d, NewSource(seed))
		b.ballsPerShot = 1 + int(seed%50)

		if !b.Reset() {
			t.Fatalf("seed %d: Reset on an empty board reported game over", seed)
		}
		for c := 0; c < Columns; c++ {
			if cell := b.Cell(0, c); !validTopCell(cell) {
				t.Fatalf("seed %d (%v): invalid cell %v at column %d", seed, d, cell, c)
			}
		}
		for r := 1; r < Rows; r++ {
			for c := 0; c < Columns; c++ {
				if !b.Cell(r, c).IsEmpty() {
					t.Fatalf("seed %d: row %d col %d = %v, want empty", seed, r, c, b.Cell(r, c))
				}
			}
		}
	}
}

func TestResetShiftsRows(t *testing.T) {
	b := NewBoard(Normal, NewSource(7))
	b.SetCell(0, 0, CountCell(3))
	b.SetCell(2, 1, SpecialCell(RandomizeSpent))
	b.SetCell(2, 2, SpecialCell(Randomize))
	b.SetCell(5, 4, CountCell(11))

	if !b.Reset() {
		t.Fatal("Reset reported game over")
	}

	if got := b.Cell(1, 0); got != CountCell(3) {
		t.Errorf("row 0 did not move down: (1,0) = %v", got)
	}
	if got := b.Cell(3, 1); !got.IsEmpty() {
		t.Errorf("spent randomize tile should clear on shift, got %v", got)
	}
	if got := b.Cell(3, 2); got != SpecialCell(Randomize) {
		t.Errorf("live randomize tile should move down, got %v", got)
	}
	if got := b.Cell(6, 4); got != CountCell(11) {
		t.Errorf("(6,4) = %v, want 11", got)
	}
	if got := b.Cell(5, 4); !got.IsEmpty() {
		t.Errorf("(5,4) = %v, want empty", got)
	}
}

func TestResetGameOver(t *testing.T) {
	b := NewBoard(Hard, NewSource(1))
	b.SetCell(0, 3, SpecialCell(DoubleScore))
	b.SetCell(0, 5, CountCell(2))
	b.SetCell(Rows-2, 1, CountCell(4))
	before := b.Grid()[0]

	if b.Reset() {
		t.Fatal("Reset should report game over when a block reaches the last row")
	}
	if got := b.Grid()[0]; got != before {
		t.Errorf("row 0 changed on game over: %v, want %v", got, before)
	}
	if got := b.Cell(Rows-1, 1); got != CountCell(4) {
		t.Errorf("last row = %v, want the shifted block", got)
	}
	if !b.IsOver() {
		t.Error("IsOver should be true after game over")
	}
}

func TestResetLastRowSpecialIsNotGameOver(t *testing.T) {
	b := NewBoard(Normal, NewSource(1))
	b.SetCell(Rows-2, 0, SpecialCell(SpawnBall))
	if !b.Reset() {
		t.Error("special tile reaching the last row should not end the round")
	}
}

func TestGenerateRowScripted(t *testing.T) {
	tests := []struct {
		name    string
		d       Difficulty
		src     scriptedSource
		balls   int
		wantCol Cell // column 0
		wantRow Cell // columns 1..
	}{
		{
			name:    "every draw succeeds",
			d:       Simple,
			src:     scriptedSource{uniform: 0},
			balls:   1,
			wantCol: SpecialCell(SpawnBall),
			wantRow: CountCell(1),
		},
		{
			name:    "every draw fails",
			d:       Normal,
			src:     scriptedSource{uniform: 0.99},
			balls:   4,
			wantCol: EmptyCell(),
			wantRow: EmptyCell(),
		},
		{
			name:    "compete always places a spawn tile",
			d:       Compete,
			src:     scriptedSource{uniform: 0.99},
			balls:   4,
			wantCol: SpecialCell(SpawnBall),
			wantRow: EmptyCell(),
		},
		{
			name:    "block value is the rounded mean",
			d:       Hard,
			src:     scriptedSource{uniform: 0.55},
			balls:   3,
			wantCol: CountCell(5),
			wantRow: CountCell(5),
		},
		{
			name:    "spawn tiles stop at the ball cap",
			d:       Compete,
			src:     scriptedSource{uniform: 0.99},
			balls:   maxBallsPerShot,
			wantCol: EmptyCell(),
			wantRow: EmptyCell(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(tt.d, tt.src)
			b.ballsPerShot = tt.balls
			b.generateRow()

			if got := b.Cell(0, 0); got != tt.wantCol {
				t.Errorf("column 0 = %v, want %v", got, tt.wantCol)
			}
			for c := 1; c < Columns; c++ {
				if got := b.Cell(0, c); got != tt.wantRow {
					t.Errorf("column %d = %v, want %v", c, got, tt.wantRow)
				}
			}
		})
	}
}

func TestBlockDistribution(t *testing.T) {
	tests := []struct {
		d         Difficulty
		n         int
		wantMean  float64
		wantSigma float64
	}{
		{Simple, 6, 3, 1},
		{Normal, 6, 6, 2},
		{Hard, 6, 9, 3},
		{Compete, 6, math.Pow(6, 1.1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			mean, sigma := blockDistribution(tt.d, tt.n)
			if mean != tt.wantMean || sigma != tt.wantSigma {
				t.Errorf("blockDistribution(%v, %d) = (%v, %v), want (%v, %v)",
					tt.d, tt.n, mean, sigma, tt.wantMean, tt.wantSigma)
			}
		})
	}
}
