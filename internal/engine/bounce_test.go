package engine

import "testing"

// boxedBoard surrounds cell (4,3) with blocks on all eight sides.
func boxedBoard() *Board {
	b := NewBoard(Normal, nil)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr != 0 || dc != 0 {
				b.SetCell(4+dr, 3+dc, CountCell(9))
			}
		}
	}
	return b
}

func TestBounceNoBoundaryCrossed(t *testing.T) {
	tests := []struct {
		name string
		pos  Vec2
		vel  Vec2
	}{
		{"center drift", V(700, 900), V(13, -7)},
		{"toward left wall", V(650, 900), V(-20, 30)},
		{"toward bottom wall", V(700, 940), V(-3, 30)},
		{"fast diagonal", V(700, 900), V(45, -45)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boxedBoard()
			ball := Ball{Pos: tt.pos, Vel: tt.vel}

			if b.bounce(&ball) {
				t.Fatal("ball should not be retired")
			}
			if ball.Vel != tt.vel {
				t.Errorf("Vel = %v, want %v", ball.Vel, tt.vel)
			}
			if want := tt.pos.Add(tt.vel); ball.Pos != want {
				t.Errorf("Pos = %v, want %v", ball.Pos, want)
			}
			if b.Score() != 0 {
				t.Errorf("Score = %d, want 0", b.Score())
			}
		})
	}
}

func TestBounceOuterWalls(t *testing.T) {
	tests := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantPos Vec2
		wantVel Vec2
	}{
		{"left", V(30, 800), V(-20, -5), V(30, 795), V(20, -5)},
		{"right", V(Width-30, 800), V(20, -5), V(Width-30, 795), V(-20, -5)},
		{"top", V(300, 30), V(5, -20), V(305, 30), V(5, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(Normal, nil)
			ball := Ball{Pos: tt.pos, Vel: tt.vel}

			if b.bounce(&ball) {
				t.Fatal("ball should not be retired")
			}
			if ball.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", ball.Pos, tt.wantPos)
			}
			if ball.Vel != tt.wantVel {
				t.Errorf("Vel = %v, want %v", ball.Vel, tt.wantVel)
			}
			if b.Score() != 0 {
				t.Errorf("outer walls should not score, got %d", b.Score())
			}
		})
	}
}

func TestBounceBlockHits(t *testing.T) {
	tests := []struct {
		name      string
		block     [2]int
		count     int32
		pos       Vec2
		vel       Vec2
		wantPos   Vec2
		wantVel   Vec2
		wantAfter Cell
	}{
		{
			name:  "right side Count(5)",
			block: [2]int{4, 4}, count: 5,
			pos: V(770, 800), vel: V(20, -5),
			wantPos: V(770, 795), wantVel: V(-20, -5),
			wantAfter: CountCell(4),
		},
		{
			name:  "bottom side Count(1)",
			block: [2]int{5, 3}, count: 1,
			pos: V(700, 960), vel: V(5, 30),
			wantPos: V(705, 970), wantVel: V(5, -30),
			wantAfter: EmptyCell(),
		},
		{
			name:  "top side Count(2)",
			block: [2]int{3, 3}, count: 2,
			pos: V(700, 830), vel: V(-5, -20),
			wantPos: V(695, 830), wantVel: V(-5, 20),
			wantAfter: CountCell(1),
		},
		{
			name:  "rounded corner",
			block: [2]int{3, 2}, count: 3,
			pos: V(625, 825), vel: V(-12, -8),
			wantPos: V(623, 827), wantVel: V(8, 12),
			wantAfter: CountCell(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(Normal, nil)
			b.SetCell(tt.block[0], tt.block[1], CountCell(tt.count))
			ball := Ball{Pos: tt.pos, Vel: tt.vel}

			if b.bounce(&ball) {
				t.Fatal("ball should not be retired")
			}
			if ball.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", ball.Pos, tt.wantPos)
			}
			if ball.Vel != tt.wantVel {
				t.Errorf("Vel = %v, want %v", ball.Vel, tt.wantVel)
			}
			if got := b.Cell(tt.block[0], tt.block[1]); got != tt.wantAfter {
				t.Errorf("block = %v, want %v", got, tt.wantAfter)
			}
			if b.Score() != 1 {
				t.Errorf("Score = %d, want 1", b.Score())
			}
		})
	}
}

func TestBounceCornerBetweenTwoWalls(t *testing.T) {
	tests := []struct {
		name     string
		blocks   [][2]int
		pos      Vec2
		vel      Vec2
		wantPos  Vec2
		wantVel  Vec2
		wantHits map[[2]int]Cell
		score    uint64
	}{
		{
			name:    "left and top walls with diagonal block",
			blocks:  [][2]int{{4, 2}, {3, 3}, {3, 2}},
			pos:     V(625, 825),
			vel:     V(-12, -8),
			wantPos: V(627, 823),
			wantVel: V(12, 8),
			wantHits: map[[2]int]Cell{
				{4, 2}: CountCell(2),
				{3, 3}: CountCell(2),
				{3, 2}: CountCell(3),
			},
			score: 2,
		},
		{
			name:    "left and top walls without diagonal block",
			blocks:  [][2]int{{4, 2}, {3, 3}},
			pos:     V(625, 825),
			vel:     V(-12, -8),
			wantPos: V(627, 823),
			wantVel: V(12, 8),
			wantHits: map[[2]int]Cell{
				{4, 2}: CountCell(2),
				{3, 3}: CountCell(2),
				{3, 2}: EmptyCell(),
			},
			score: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(Normal, nil)
			for _, rc := range tt.blocks {
				b.SetCell(rc[0], rc[1], CountCell(3))
			}
			ball := Ball{Pos: tt.pos, Vel: tt.vel}

			if b.bounce(&ball) {
				t.Fatal("ball should not be retired")
			}
			if ball.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", ball.Pos, tt.wantPos)
			}
			if ball.Vel != tt.wantVel {
				t.Errorf("Vel = %v, want %v", ball.Vel, tt.wantVel)
			}
			for rc, want := range tt.wantHits {
				if got := b.Cell(rc[0], rc[1]); got != want {
					t.Errorf("cell %v = %v, want %v", rc, got, want)
				}
			}
			if b.Score() != tt.score {
				t.Errorf("Score = %d, want %d", b.Score(), tt.score)
			}
		})
	}
}

func TestBounceExitsThroughBottom(t *testing.T) {
	b := NewBoard(Normal, nil)
	ball := Ball{Pos: V(600, 1570), Vel: V(0, 50)}
	if !b.bounce(&ball) {
		t.Error("ball crossing the floor should be retired")
	}

	// Rising balls near the floor stay in play.
	ball = Ball{Pos: V(600, 1570), Vel: V(0, -50)}
	if b.bounce(&ball) {
		t.Error("rising ball should stay in play")
	}
}

func TestBounceStraightUpClearsBlock(t *testing.T) {
	b := NewBoard(Normal, nil)
	b.SetCell(7, 0, CountCell(1))
	ball := Ball{Pos: V(Side/2, StartY()), Vel: V(0, -minVerticalSpeed)}

	for i := 0; i < 10000 && !b.Cell(7, 0).IsEmpty(); i++ {
		if b.bounce(&ball) {
			t.Fatalf("ball retired at step %d before clearing the block", i)
		}
	}

	if !b.Cell(7, 0).IsEmpty() {
		t.Fatalf("block = %v, want empty", b.Cell(7, 0))
	}
	if b.Score() != 1 {
		t.Errorf("Score = %d, want 1", b.Score())
	}
}

func TestBounceSpecialTiles(t *testing.T) {
	center := V(700, 900)

	t.Run("remove block retires the ball", func(t *testing.T) {
		b := NewBoard(Normal, nil)
		b.SetCell(4, 3, SpecialCell(RemoveBlock))
		ball := Ball{Pos: center, Vel: V(0, -50)}

		if !b.bounce(&ball) {
			t.Error("RemoveBlock should retire the ball on the same call")
		}
		if !b.Cell(4, 3).IsEmpty() {
			t.Errorf("tile = %v, want empty", b.Cell(4, 3))
		}
		if ball.Pos != center {
			t.Errorf("retired ball moved to %v", ball.Pos)
		}
	})

	t.Run("spawn ball grows the next shot", func(t *testing.T) {
		b := NewBoard(Normal, nil)
		b.SetCell(4, 3, SpecialCell(SpawnBall))
		ball := Ball{Pos: center, Vel: V(0, -50)}

		if b.bounce(&ball) {
			t.Error("SpawnBall should not retire the ball")
		}
		if b.BallsPerShot() != 2 {
			t.Errorf("BallsPerShot = %d, want 2", b.BallsPerShot())
		}
		if !b.Cell(4, 3).IsEmpty() {
			t.Errorf("tile = %v, want empty", b.Cell(4, 3))
		}
	})

	t.Run("double score sets the flag", func(t *testing.T) {
		b := NewBoard(Normal, nil)
		b.SetCell(4, 3, SpecialCell(DoubleScore))
		ball := Ball{Pos: center, Vel: V(0, -50)}

		b.bounce(&ball)
		if !b.DoubleScore() {
			t.Error("DoubleScore should be set")
		}
		if !b.Cell(4, 3).IsEmpty() {
			t.Errorf("tile = %v, want empty", b.Cell(4, 3))
		}
	})

	t.Run("randomize redirects the ball", func(t *testing.T) {
		b := NewBoard(Normal, scriptedSource{})
		b.SetCell(4, 3, SpecialCell(Randomize))
		ball := Ball{Pos: center, Vel: V(-30, -40)}

		b.bounce(&ball)
		// Heading left, so the draw is centered on angle 0 (rightward).
		if ball.Vel.X != Speed {
			t.Errorf("Vel.X = %v, want %v", ball.Vel.X, Speed)
		}
		if ball.Vel.Y != -minVerticalSpeed {
			t.Errorf("Vel.Y = %v, want %v after clamp", ball.Vel.Y, -minVerticalSpeed)
		}
		if got := b.Cell(4, 3); got != SpecialCell(RandomizeSpent) {
			t.Errorf("tile = %v, want spent randomize", got)
		}
	})

	t.Run("tile outside trigger radius is ignored", func(t *testing.T) {
		b := NewBoard(Normal, nil)
		b.SetCell(4, 3, SpecialCell(RemoveBlock))
		ball := Ball{Pos: center.Add(V(TriggerRadius+1, 0)), Vel: V(0, -50)}

		if b.bounce(&ball) {
			t.Error("ball outside the trigger radius should not be retired")
		}
		if got := b.Cell(4, 3); got != SpecialCell(RemoveBlock) {
			t.Errorf("tile = %v, want untouched", got)
		}
	})
}

func TestBounceMinimumVerticalSpeed(t *testing.T) {
	b := NewBoard(Normal, nil)
	ball := Ball{Pos: V(700, 900), Vel: V(40, 0.5)}
	b.bounce(&ball)
	if ball.Vel.Y != minVerticalSpeed {
		t.Errorf("Vel.Y = %v, want %v", ball.Vel.Y, minVerticalSpeed)
	}

	ball = Ball{Pos: V(700, 900), Vel: V(40, -0.25)}
	b.bounce(&ball)
	if ball.Vel.Y != -minVerticalSpeed {
		t.Errorf("Vel.Y = %v, want %v", ball.Vel.Y, -minVerticalSpeed)
	}
}
