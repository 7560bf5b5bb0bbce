package engine

// spawnCadence is the number of ticks between two spawned balls.
const spawnCadence = 4

// Ticker is one shot in progress. It holds the live balls and the spawn
// schedule, and borrows the Board only for the duration of each call.
type Ticker struct {
	balls      []Ball
	total      int // balls fired by this shot
	remaining  int // not spawned yet
	stopped    int // already retired
	phase      int
	newStart   float64
	hasPending bool
	consumed   bool
}

func newTicker(total int) *Ticker {
	return &Ticker{
		balls:     make([]Ball, 0, min(total, 64)),
		total:     total,
		remaining: total,
		// The counter wraps to 0 on the first Tick so the first ball
		// leaves immediately.
		phase: spawnCadence - 1,
	}
}

// Tick advances the shot by one step: it spawns a ball every spawnCadence
// calls while some remain, then bounces every live ball once. It returns
// false once every ball has been spawned and retired.
func (t *Ticker) Tick(b *Board) bool {
	t.phase = (t.phase + 1) % spawnCadence
	if t.remaining > 0 && t.phase == 0 {
		t.balls = append(t.balls, Ball{Pos: b.StartPoint(), Vel: b.startVelocity})
		t.remaining--
	}

	live := t.balls[:0]
	for _, ball := range t.balls {
		if !b.bounce(&ball) {
			live = append(live, ball)
			continue
		}
		t.stopped++
		if !t.hasPending && ball.Pos.Y+Radius >= Height {
			t.newStart = landingX(ball)
			t.hasPending = true
		}
	}
	clear(t.balls[len(live):])
	t.balls = live

	return !t.Done()
}

// landingX extrapolates the step that carried ball past the bottom back to
// the launch line and clamps it to the playable range.
func landingX(ball Ball) float64 {
	prev := ball.Pos.Sub(ball.Vel)
	h := StartY() - prev.Y
	x := prev.X + h/ball.Vel.Y*ball.Vel.X
	return clampFloat(x, Radius, Width-Radius)
}

// Consume ends the shot: it moves the board's launch point to where the
// first ball landed and clears the double-score flag. It must be called
// exactly once per shot; later calls return ErrTickerConsumed.
func (t *Ticker) Consume(b *Board) error {
	if t.consumed {
		return ErrTickerConsumed
	}
	t.consumed = true
	if t.hasPending {
		b.startX = t.newStart
	}
	b.doubleScore = false
	return nil
}

// Balls returns the live balls. The slice is only valid until the next Tick.
func (t *Ticker) Balls() []Ball { return t.balls }

// Total returns how many balls this shot fires.
func (t *Ticker) Total() int { return t.total }

// Remaining returns how many balls are still waiting to spawn.
func (t *Ticker) Remaining() int { return t.remaining }

// Stopped returns how many balls have been retired.
func (t *Ticker) Stopped() int { return t.stopped }

// Phase returns the spawn cadence counter.
func (t *Ticker) Phase() int { return t.phase }

// Consumed reports whether Consume has run.
func (t *Ticker) Consumed() bool { return t.consumed }

// SpawningDone reports whether every ball of the shot has been launched.
func (t *Ticker) SpawningDone() bool { return t.remaining == 0 }

// Done reports whether the shot is over.
func (t *Ticker) Done() bool {
	return t.remaining == 0 && len(t.balls) == 0
}

// PendingStart returns the launch point for the next shot, once the first
// ball has landed.
func (t *Ticker) PendingStart() (Vec2, bool) {
	if !t.hasPending {
		return Vec2{}, false
	}
	return Vec2{t.newStart, StartY()}, true
}
