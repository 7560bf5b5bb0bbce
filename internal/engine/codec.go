package engine

import (
	"encoding/binary"
	"fmt"
	"math"
)

// RecordVersion is the first field of every encoded record.
const RecordVersion int32 = 2

// Fixed-size prefix of a record, up to and including the live ball count.
const recordHeaderSize = 4 + 4 + 16 + 16 + 16 + 4 + 8 + 4 + Rows*Columns*4 + 4 + 4 + 4 + 8

const ballRecordSize = 4 * 8

// Encode serializes the board and, if a shot is running, its ticker into
// the little-endian save record.
func Encode(b *Board, t *Ticker) []byte {
	w := recordWriter{buf: make([]byte, 0, recordHeaderSize)}

	w.i32(RecordVersion)
	w.i32(int32(b.ballsPerShot))
	w.vec(b.StartPoint())

	pending := b.StartPoint()
	if t != nil {
		if p, ok := t.PendingStart(); ok {
			pending = p
		}
	}
	w.vec(pending)
	w.vec(b.startVelocity)

	var double int32
	if b.doubleScore {
		double = 1
	}
	w.i32(double)
	w.u64(b.score)
	w.i32(int32(b.difficulty))

	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			w.i32(b.grid[r][c].Code())
		}
	}

	if t == nil {
		w.i32(0)
		w.i32(0)
		w.i32(0)
		w.u64(0)
		return w.buf
	}
	w.i32(int32(t.total))
	w.i32(int32(t.stopped))
	w.i32(int32(t.phase))
	w.u64(uint64(len(t.balls)))
	for _, ball := range t.balls {
		w.vec(ball.Pos)
		w.vec(ball.Vel)
	}
	return w.buf
}

// Decode rebuilds a board from a record produced by Encode. The ticker is
// non-nil when the record was taken mid-shot, that is with live balls or
// balls still waiting to spawn, so a record whose balls have all retired
// but whose spawn queue is not empty still resumes. The pending launch point
// is stored as a plain x coordinate: a first landing exactly at the current
// start x reads back as no landing yet, which Consume treats the same way.
// src seeds the restored board; nil picks a fixed default. Malformed input
// yields an error wrapping ErrInvalidData.
func Decode(data []byte, src Source) (*Board, *Ticker, error) {
	r := recordReader{buf: data}
	if len(data) < recordHeaderSize {
		return nil, nil, fmt.Errorf("%w: record is %d bytes, need at least %d", ErrInvalidData, len(data), recordHeaderSize)
	}

	if v := r.i32(); v != RecordVersion {
		return nil, nil, fmt.Errorf("%w: unsupported record version %d", ErrInvalidData, v)
	}

	balls := r.i32()
	if balls < 1 {
		return nil, nil, fmt.Errorf("%w: balls per shot %d", ErrInvalidData, balls)
	}
	start := r.vec()
	pending := r.vec()
	velocity := r.vec()
	double := r.i32() != 0
	score := r.u64()

	d := Difficulty(r.i32())
	if !d.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown difficulty %d", ErrInvalidData, int32(d))
	}

	var grid Grid
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			cell, err := CellFromCode(r.i32())
			if err != nil {
				return nil, nil, err
			}
			grid[row][col] = cell
		}
	}

	total := int(r.i32())
	stopped := int(r.i32())
	phase := int(r.i32())
	live := r.u64()

	if live > uint64(len(r.buf)/ballRecordSize) {
		return nil, nil, fmt.Errorf("%w: %d live balls but only %d bytes left", ErrInvalidData, live, len(r.buf))
	}
	remaining := total - stopped - int(live)
	if total < 0 || stopped < 0 || remaining < 0 {
		return nil, nil, fmt.Errorf("%w: ball counts total=%d stopped=%d live=%d", ErrInvalidData, total, stopped, live)
	}
	if phase < 0 || phase >= spawnCadence {
		return nil, nil, fmt.Errorf("%w: spawn phase %d", ErrInvalidData, phase)
	}

	if src == nil {
		src = NewSource(1)
	}
	b := &Board{
		grid:          grid,
		difficulty:    d,
		rng:           src,
		score:         score,
		startX:        start.X,
		startVelocity: velocity,
		ballsPerShot:  int(balls),
		doubleScore:   double,
	}
	b.sample = b.StartPoint()

	if live == 0 && remaining == 0 {
		return b, nil, nil
	}

	t := &Ticker{
		balls:     make([]Ball, 0, live),
		total:     total,
		remaining: remaining,
		stopped:   stopped,
		phase:     phase,
	}
	for i := uint64(0); i < live; i++ {
		pos := r.vec()
		vel := r.vec()
		t.balls = append(t.balls, Ball{Pos: pos, Vel: vel})
	}
	if pending.X != start.X {
		t.newStart = pending.X
		t.hasPending = true
	}
	return b, t, nil
}

type recordWriter struct {
	buf []byte
}

func (w *recordWriter) i32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *recordWriter) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *recordWriter) f64(v float64) {
	w.u64(math.Float64bits(v))
}

func (w *recordWriter) vec(v Vec2) {
	w.f64(v.X)
	w.f64(v.Y)
}

// recordReader consumes a buffer whose length the caller has already
// checked.
type recordReader struct {
	buf []byte
}

func (r *recordReader) i32() int32 {
	v := int32(binary.LittleEndian.Uint32(r.buf))
	r.buf = r.buf[4:]
	return v
}

func (r *recordReader) u64() uint64 {
	v := binary.LittleEndian.Uint64(r.buf)
	r.buf = r.buf[8:]
	return v
}

func (r *recordReader) f64() float64 {
	return math.Float64frombits(r.u64())
}

func (r *recordReader) vec() Vec2 {
	return Vec2{r.f64(), r.f64()}
}
