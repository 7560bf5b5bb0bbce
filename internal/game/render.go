package game

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-balls/internal/core"
	"github.com/vovakirdan/tui-balls/internal/engine"
)

const (
	hudHeight = 1
	minCellW  = 3
	minCellH  = 1
)

// Viewport maps world coordinates onto screen cells.
type Viewport struct {
	Inner        core.Rect // Board area inside the frame
	CellW, CellH int       // Screen cells per board cell
}

// Layout fits the board into a width x height screen below the HUD. Zero
// cell sizes are chosen to fill the screen, keeping board cells roughly
// square on a terminal (two columns per row).
func Layout(width, height, cellW, cellH int) Viewport {
	availW := width - 2
	availH := height - hudHeight - 2
	if cellW <= 0 && cellH <= 0 {
		cellH = max(minCellH, min(availH/engine.Rows, availW/(engine.Columns*2)))
		cellW = cellH * 2
		if cellW*engine.Columns > availW {
			cellW = availW / engine.Columns
		}
	} else {
		if cellH <= 0 {
			cellH = max(minCellH, cellW/2)
		}
		if cellW <= 0 {
			cellW = cellH * 2
		}
	}
	cellW = max(minCellW, cellW)
	cellH = max(minCellH, cellH)

	innerW := cellW * engine.Columns
	innerH := cellH * engine.Rows
	x := max(1, (width-innerW)/2)
	y := hudHeight + 1
	return Viewport{
		Inner: core.NewRect(x, y, innerW, innerH),
		CellW: cellW,
		CellH: cellH,
	}
}

// Point converts a world position to a screen cell.
func (v Viewport) Point(p engine.Vec2) (int, int) {
	sx := int(math.Floor(p.X / engine.Width * float64(v.Inner.W)))
	sy := int(math.Floor(p.Y / engine.Height * float64(v.Inner.H)))
	return v.Inner.X + core.Clamp(sx, 0, v.Inner.W-1), v.Inner.Y + core.Clamp(sy, 0, v.Inner.H-1)
}

// World converts a screen cell to the world position of its center.
func (v Viewport) World(x, y int) engine.Vec2 {
	wx := (float64(x-v.Inner.X) + 0.5) / float64(v.Inner.W) * engine.Width
	wy := (float64(y-v.Inner.Y) + 0.5) / float64(v.Inner.H) * engine.Height
	return engine.V(wx, wy)
}

// CellRect returns the screen rectangle of board cell (row, col).
func (v Viewport) CellRect(row, col int) core.Rect {
	return core.NewRect(v.Inner.X+col*v.CellW, v.Inner.Y+row*v.CellH, v.CellW, v.CellH)
}

// Viewport returns the layout used for a screen of the given size.
func (s *Session) Viewport(width, height int) Viewport {
	return Layout(width, height, s.opts.CellWidth, s.opts.CellHeight)
}

// Render draws the HUD, the board and any overlay.
func (s *Session) Render(screen *core.Screen) {
	screen.Clear()
	vp := s.Viewport(screen.Width(), screen.Height())

	s.renderHUD(screen)
	screen.DrawBox(vp.Inner.Inset(-1), core.ColorGray)
	screen.FillRect(vp.Inner, ' ', core.ColorDefault, core.ColorPanel)

	s.renderCells(screen, vp)
	s.renderBalls(screen, vp)

	if s.over {
		s.renderGameOver(screen, vp)
	} else if s.paused {
		screen.DrawTextCentered(vp.Inner, vp.Inner.Y+vp.Inner.H/2, " PAUSED ", core.ColorBlack, core.ColorBrightYellow)
	}
}

func (s *Session) renderHUD(screen *core.Screen) {
	st := s.State()
	x := 1
	put := func(text string, fg core.Color) {
		screen.DrawTextColored(x, 0, text, fg, core.ColorDefault)
		x += len([]rune(text)) + 2
	}

	put("BALLS", core.ColorBrightCyan)
	put(st.Difficulty, core.ColorWhite)
	put(fmt.Sprintf("balls x%d", st.BallsPerShot), core.ColorBrightWhite)
	if t := s.ticker; t != nil {
		put(fmt.Sprintf("in flight %d/%d", st.InFlight, t.Total()), core.ColorGray)
	}
	put(fmt.Sprintf("score %d", st.Score), core.ColorBrightYellow)
	if st.DoubleScore {
		put("x2", core.ColorYellow)
	}
}

func (s *Session) renderCells(screen *core.Screen, vp Viewport) {
	for r := 0; r < engine.Rows; r++ {
		for c := 0; c < engine.Columns; c++ {
			cell := s.board.Cell(r, c)
			rect := vp.CellRect(r, c)
			switch {
			case cell.IsBlock():
				drawBlock(screen, rect, int(cell.Count()))
			case cell.IsSpecial():
				drawSpecial(screen, rect, cell.Special())
			}
		}
	}
}

func drawBlock(screen *core.Screen, rect core.Rect, n int) {
	bg := core.RampColor(n)
	fg := core.ColorBrightWhite
	if bg.Light() {
		fg = core.ColorBlack
	}
	// Leave a one column gap so neighbouring blocks stay apart.
	body := rect
	if body.W > minCellW {
		body.W--
	}
	screen.FillRect(body, ' ', fg, bg)
	label := countLabel(n, body.W)
	screen.DrawTextCentered(body, body.Y+body.H/2, label, fg, bg)
}

// countLabel shortens n to fit width columns.
func countLabel(n, width int) string {
	label := strconv.Itoa(n)
	if len(label) <= width {
		return label
	}
	if k := strconv.Itoa(n/1000) + "k"; len(k) <= width {
		return k
	}
	return "#"
}

func specialColor(sp engine.Special) core.Color {
	switch sp {
	case engine.SpawnBall:
		return core.ColorBrightBlue
	case engine.RemoveBlock:
		return core.ColorRed
	case engine.Randomize:
		return core.ColorPurple
	case engine.RandomizeSpent:
		return core.ColorBrightRed
	case engine.DoubleScore:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}

func drawSpecial(screen *core.Screen, rect core.Rect, sp engine.Special) {
	cx, cy := rect.Center()
	fg := specialColor(sp)
	if rect.W >= 3 {
		screen.SetColored(cx-1, cy, '(', fg, core.ColorPanel)
		screen.SetColored(cx+1, cy, ')', fg, core.ColorPanel)
	}
	screen.SetColored(cx, cy, sp.Glyph(), fg, core.ColorPanel)
}

func (s *Session) renderBalls(screen *core.Screen, vp Viewport) {
	ballFG := core.ColorBrightRed
	if s.board.DoubleScore() {
		ballFG = core.ColorBrightYellow
	}

	if t := s.ticker; t != nil {
		// The launcher stays visible until the last ball has left it.
		if !t.SpawningDone() {
			x, y := vp.Point(s.board.StartPoint())
			screen.SetColored(x, y, '●', ballFG, core.ColorPanel)
		}
		if p, ok := t.PendingStart(); ok {
			x, y := vp.Point(p)
			screen.SetColored(x, y, '○', core.ColorGray, core.ColorPanel)
		}
		for _, b := range t.Balls() {
			x, y := vp.Point(b.Pos)
			screen.SetColored(x, y, '●', ballFG, core.ColorPanel)
		}
		return
	}

	if s.over {
		return
	}
	if s.opts.ShowPreview && s.board.SampleVisible() {
		x, y := vp.Point(s.board.Sample())
		screen.SetColored(x, y, '•', core.ColorBrightRed, core.ColorPanel)
	}
	ax, ay := vp.Point(s.aim)
	screen.SetColored(ax, ay, '+', core.ColorBrightWhite, core.ColorPanel)
	x, y := vp.Point(s.board.StartPoint())
	screen.SetColored(x, y, '●', ballFG, core.ColorPanel)
}

func (s *Session) renderGameOver(screen *core.Screen, vp Viewport) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("%s  balls %d  score %d", s.board.Difficulty().Title(), s.board.BallsPerShot(), s.board.Score()),
		"",
		"r restart  q quit",
	}
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect(0, 0, w+4, len(lines)+2)
	box.X = vp.Inner.X + (vp.Inner.W-box.W)/2
	box.Y = vp.Inner.Y + (vp.Inner.H-box.H)/2
	screen.FillRect(box, ' ', core.ColorDefault, core.ColorBlack)
	screen.DrawBox(box, core.ColorBrightRed)
	for i, l := range lines {
		fg := core.ColorWhite
		if i == 0 {
			fg = core.ColorBrightRed
		}
		screen.DrawTextCentered(box, box.Y+1+i, l, fg, core.ColorBlack)
	}
}
