package game

import (
	"github.com/vovakirdan/tui-balls/internal/engine"
)

// Summary is a readable view of a decoded record.
type Summary struct {
	Version      int32     `json:"version" yaml:"version"`
	Difficulty   string    `json:"difficulty" yaml:"difficulty"`
	Score        uint64    `json:"score" yaml:"score"`
	BallsPerShot int       `json:"balls_per_shot" yaml:"balls_per_shot"`
	DoubleScore  bool      `json:"double_score" yaml:"double_score"`
	StartX       float64   `json:"start_x" yaml:"start_x"`
	Over         bool      `json:"over" yaml:"over"`
	Shot         *ShotInfo `json:"shot,omitempty" yaml:"shot,omitempty"`
	Rows         []string  `json:"rows" yaml:"rows"`
}

// ShotInfo describes a shot that was running when the record was taken.
type ShotInfo struct {
	Total     int        `json:"total" yaml:"total"`
	Stopped   int        `json:"stopped" yaml:"stopped"`
	Remaining int        `json:"remaining" yaml:"remaining"`
	InFlight  int        `json:"in_flight" yaml:"in_flight"`
	Balls     []BallInfo `json:"balls,omitempty" yaml:"balls,omitempty"`
}

// BallInfo is one live ball in world units.
type BallInfo struct {
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
	VX float64 `json:"vx" yaml:"vx"`
	VY float64 `json:"vy" yaml:"vy"`
}

// Summarize decodes record and describes it.
func Summarize(record []byte) (*Summary, error) {
	b, t, err := engine.Decode(record, nil)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Version:      engine.RecordVersion,
		Difficulty:   b.Difficulty().String(),
		Score:        b.Score(),
		BallsPerShot: b.BallsPerShot(),
		DoubleScore:  b.DoubleScore(),
		StartX:       b.StartX(),
		Over:         t == nil && b.IsOver(),
		Rows:         GridRows(b),
	}
	if t != nil {
		sum.Shot = &ShotInfo{
			Total:     t.Total(),
			Stopped:   t.Stopped(),
			Remaining: t.Remaining(),
			InFlight:  len(t.Balls()),
		}
		for _, ball := range t.Balls() {
			sum.Shot.Balls = append(sum.Shot.Balls, BallInfo{
				X: ball.Pos.X, Y: ball.Pos.Y, VX: ball.Vel.X, VY: ball.Vel.Y,
			})
		}
	}
	return sum, nil
}

// GridRows renders the grid as fixed-width text, one string per row.
// Blocks show their count, special tiles their glyph, empty cells a dot.
func GridRows(b *engine.Board) []string {
	rows := make([]string, 0, engine.Rows)
	for r := 0; r < engine.Rows; r++ {
		line := make([]byte, 0, engine.Columns*5)
		for c := 0; c < engine.Columns; c++ {
			cell := b.Cell(r, c)
			var label string
			switch {
			case cell.IsBlock():
				label = countLabel(int(cell.Count()), 4)
			case cell.IsSpecial():
				label = string(cell.Special().Glyph())
			default:
				label = "."
			}
			for len(label) < 4 {
				label = " " + label
			}
			if c > 0 {
				line = append(line, ' ')
			}
			line = append(line, label...)
		}
		rows = append(rows, string(line))
	}
	return rows
}
