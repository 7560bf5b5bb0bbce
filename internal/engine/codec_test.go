package engine

import (
	"encoding/binary"
	"errors"
	"testing"
)

// Byte offsets of selected record fields.
const (
	offBalls      = 4
	offDifficulty = 68
	offCells      = 72
	offTotal      = offCells + Rows*Columns*4
	offStopped    = offTotal + 4
	offPhase      = offStopped + 4
	offLive       = offPhase + 4
)

func putInt32(data []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(data[off:], uint32(v))
}

func playedBoard(t *testing.T) *Board {
	t.Helper()
	b := NewBoard(Hard, NewSource(99))
	for i := 0; i < 4; i++ {
		if !b.Reset() {
			t.Fatal("unexpected game over")
		}
	}
	b.score = 1234
	b.ballsPerShot = 5
	b.startX = 321.5
	b.startVelocity = V(12.25, -40.5)
	b.doubleScore = true
	return b
}

func TestCodecIdleRoundTrip(t *testing.T) {
	b := playedBoard(t)
	data := Encode(b, nil)

	if len(data) != recordHeaderSize {
		t.Errorf("record size = %d, want %d", len(data), recordHeaderSize)
	}

	got, tk, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tk != nil {
		t.Error("idle record should not restore a ticker")
	}
	if got.Grid() != b.Grid() {
		t.Error("grid differs after round trip")
	}
	if got.Score() != b.Score() || got.Difficulty() != b.Difficulty() || got.BallsPerShot() != b.BallsPerShot() {
		t.Errorf("got score=%d diff=%v balls=%d, want score=%d diff=%v balls=%d",
			got.Score(), got.Difficulty(), got.BallsPerShot(), b.Score(), b.Difficulty(), b.BallsPerShot())
	}
	if got.StartX() != b.StartX() || got.StartVelocity() != b.StartVelocity() || got.DoubleScore() != b.DoubleScore() {
		t.Error("launch state differs after round trip")
	}
}

func TestCodecMidShotRoundTrip(t *testing.T) {
	b := NewBoard(Normal, NewSource(5))
	b.ballsPerShot = 4
	b.SetCell(1, 3, CountCell(50))
	tk := b.Start(V(Width-100, 300))
	for i := 0; i < 6; i++ {
		tk.Tick(b)
	}

	data := Encode(b, tk)
	got, gotTk, err := Decode(data, NewSource(5))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotTk == nil {
		t.Fatal("mid-shot record should restore a ticker")
	}
	if gotTk.Remaining() != tk.Remaining() || gotTk.Stopped() != tk.Stopped() || gotTk.Phase() != tk.Phase() || gotTk.Total() != tk.Total() {
		t.Errorf("counters = %d/%d/%d/%d, want %d/%d/%d/%d",
			gotTk.Total(), gotTk.Remaining(), gotTk.Stopped(), gotTk.Phase(),
			tk.Total(), tk.Remaining(), tk.Stopped(), tk.Phase())
	}
	if len(gotTk.Balls()) != len(tk.Balls()) {
		t.Fatalf("live balls = %d, want %d", len(gotTk.Balls()), len(tk.Balls()))
	}
	for i := range tk.Balls() {
		if gotTk.Balls()[i] != tk.Balls()[i] {
			t.Errorf("ball %d = %+v, want %+v", i, gotTk.Balls()[i], tk.Balls()[i])
		}
	}

	// Both copies must play the rest of the shot identically.
	runShot(t, b, tk)
	runShot(t, got, gotTk)
	if err := tk.Consume(b); err != nil {
		t.Fatal(err)
	}
	if err := gotTk.Consume(got); err != nil {
		t.Fatal(err)
	}
	if got.Score() != b.Score() || got.StartX() != b.StartX() || got.Grid() != b.Grid() {
		t.Errorf("resumed shot diverged: score %d vs %d, startX %v vs %v",
			got.Score(), b.Score(), got.StartX(), b.StartX())
	}
}

func TestCodecPendingStartSurvives(t *testing.T) {
	b := NewBoard(Normal, nil)
	b.ballsPerShot = 40
	tk := b.Start(V(Width, 500))
	for tk.Stopped() == 0 {
		tk.Tick(b)
	}
	want, ok := tk.PendingStart()
	if !ok {
		t.Fatal("expected a pending start")
	}

	_, gotTk, err := Decode(Encode(b, tk), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, ok := gotTk.PendingStart(); !ok || got != want {
		t.Errorf("PendingStart = %v,%v want %v,true", got, ok, want)
	}
}

func TestCodecPendingStartAtLaunchX(t *testing.T) {
	b := NewBoard(Normal, nil)
	b.ballsPerShot = 3
	start := b.StartX()
	tk := b.Start(V(start, Side))
	for tk.Stopped() == 0 {
		tk.Tick(b)
	}
	if got, ok := tk.PendingStart(); !ok || got.X != start {
		t.Fatalf("PendingStart = %v,%v want x=%v,true", got, ok, start)
	}

	got, gotTk, err := Decode(Encode(b, tk), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotTk == nil {
		t.Fatal("mid-shot record should restore a ticker")
	}
	if _, ok := gotTk.PendingStart(); ok {
		t.Error("landing at the launch x should read back as unset")
	}

	runShot(t, got, gotTk)
	if err := gotTk.Consume(got); err != nil {
		t.Fatal(err)
	}
	if got.StartX() != start {
		t.Errorf("StartX = %v, want %v", got.StartX(), start)
	}
}

func TestCodecSpawnQueueWithoutLiveBalls(t *testing.T) {
	b := NewBoard(Normal, nil)
	b.ballsPerShot = 3
	tk := b.Start(V(Width/2, Side))
	// The first ball was retired before the second left the launcher.
	tk.remaining = 2
	tk.stopped = 1
	tk.phase = spawnCadence - 1

	data := Encode(b, tk)
	_, gotTk, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotTk == nil {
		t.Fatal("record with balls left to spawn should restore a ticker")
	}
	if gotTk.Total() != 3 || gotTk.Remaining() != 2 || gotTk.Stopped() != 1 || len(gotTk.Balls()) != 0 {
		t.Errorf("total=%d remaining=%d stopped=%d live=%d, want 3/2/1/0",
			gotTk.Total(), gotTk.Remaining(), gotTk.Stopped(), len(gotTk.Balls()))
	}
	if gotTk.Done() {
		t.Error("restored shot should not be done")
	}

	gotTk.Tick(b)
	if len(gotTk.Balls()) != 1 || gotTk.Remaining() != 1 {
		t.Errorf("after one tick live=%d remaining=%d, want 1/1", len(gotTk.Balls()), gotTk.Remaining())
	}
}

func TestCodecTrailingBytesIgnored(t *testing.T) {
	data := append(Encode(playedBoard(t), nil), 1, 2, 3)
	if _, _, err := Decode(data, nil); err != nil {
		t.Errorf("Decode with trailing bytes: %v", err)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte)
	}{
		{"version", func(d []byte) { putInt32(d, 0, RecordVersion+1) }},
		{"zero balls", func(d []byte) { putInt32(d, offBalls, 0) }},
		{"difficulty", func(d []byte) { putInt32(d, offDifficulty, 4) }},
		{"negative difficulty", func(d []byte) { putInt32(d, offDifficulty, -1) }},
		{"cell code", func(d []byte) { putInt32(d, offCells+4*7, minSpecialCode-1) }},
		{"stopped exceeds total", func(d []byte) {
			putInt32(d, offTotal, 2)
			putInt32(d, offStopped, 3)
		}},
		{"phase", func(d []byte) {
			putInt32(d, offTotal, 2)
			putInt32(d, offPhase, spawnCadence)
		}},
		{"live count beyond buffer", func(d []byte) {
			binary.LittleEndian.PutUint64(d[offLive:], 1<<40)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Encode(playedBoard(t), nil)
			tt.mutate(data)
			_, _, err := Decode(data, nil)
			if !errors.Is(err, ErrInvalidData) {
				t.Errorf("Decode error = %v, want ErrInvalidData", err)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	b := NewBoard(Normal, nil)
	b.ballsPerShot = 3
	tk := b.Start(V(300, 0))
	for i := 0; i < 9; i++ {
		tk.Tick(b)
	}
	data := Encode(b, tk)

	for n := 0; n < len(data); n++ {
		if _, _, err := Decode(data[:n], nil); !errors.Is(err, ErrInvalidData) {
			t.Fatalf("Decode(%d of %d bytes) error = %v, want ErrInvalidData", n, len(data), err)
		}
	}
}
