// Package game drives one round of balls: it owns the board and the running
// shot, turns semantic input into aim moves and launches, ends shots,
// regenerates rows and detects game over. It renders into a core.Screen and
// knows nothing about terminals.
package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-balls/internal/config"
	"github.com/vovakirdan/tui-balls/internal/core"
	"github.com/vovakirdan/tui-balls/internal/engine"
)

// Options configures a Session.
type Options struct {
	Difficulty  engine.Difficulty
	Seed        int64
	AimStep     float64 // World units per aim key press
	FineStep    float64 // World units per fine aim key press
	ShowPreview bool
	StartPaused bool // Mid-shot records resume paused
	CellWidth   int // Terminal columns per board cell, 0 = fit
	CellHeight  int // Terminal rows per board cell, 0 = fit
	Logger      *log.Logger
}

// DefaultOptions returns options for a normal round.
func DefaultOptions() Options {
	return Options{
		Difficulty:  engine.Normal,
		Seed:        1,
		AimStep:     40,
		FineStep:    8,
		ShowPreview: true,
		StartPaused: true,
	}
}

// OptionsFromConfig builds session options from the loaded configuration.
func OptionsFromConfig(cfg config.BallsConfig) (Options, error) {
	d, err := cfg.Difficulty()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Difficulty:  d,
		AimStep:     cfg.Aim.Step,
		FineStep:    cfg.Aim.FineStep,
		ShowPreview: cfg.Display.ShowPreview,
		StartPaused: cfg.Gameplay.StartPaused,
		CellWidth:   cfg.Display.CellWidth,
		CellHeight:  cfg.Display.CellHeight,
	}, nil
}

// Session is one round in progress.
type Session struct {
	opts   Options
	src    engine.Source
	board  *engine.Board
	ticker *engine.Ticker
	aim    engine.Vec2
	paused bool
	over   bool
	shots  int
	ticks  int // Ticks of the running shot
	log    *log.Logger
}

// New starts a fresh round: an empty board with its first generated row.
func New(opts Options) *Session {
	if opts.AimStep <= 0 {
		opts.AimStep = DefaultOptions().AimStep
	}
	if opts.FineStep <= 0 {
		opts.FineStep = DefaultOptions().FineStep
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	src := engine.NewSource(opts.Seed)
	s := &Session{
		opts:  opts,
		src:   src,
		board: engine.NewBoard(opts.Difficulty, src),
		aim:   engine.V(engine.Width/2, engine.Height/2),
		log:   logger,
	}
	s.board.Reset()
	s.board.UpdatePreview(s.aim)
	s.log.Debug("round started", "difficulty", opts.Difficulty, "seed", opts.Seed)
	return s
}

// Board returns the live board. Callers must not mutate it while a shot
// is running.
func (s *Session) Board() *engine.Board { return s.board }

// Ticker returns the running shot, or nil between shots.
func (s *Session) Ticker() *engine.Ticker { return s.ticker }

// Aim returns the current aim point in world units.
func (s *Session) Aim() engine.Vec2 { return s.aim }

// Paused reports whether the running shot is paused.
func (s *Session) Paused() bool { return s.paused }

// Over reports whether the round has ended.
func (s *Session) Over() bool { return s.over }

// Shots returns how many shots have completed this round.
func (s *Session) Shots() int { return s.shots }

// Options returns the session options.
func (s *Session) Options() Options { return s.opts }

// SetAim moves the aim point, clamped to the board above the launch line.
func (s *Session) SetAim(p engine.Vec2) {
	s.aim = engine.V(
		core.ClampF(p.X, engine.Radius, engine.Width-engine.Radius),
		core.ClampF(p.Y, engine.Radius, engine.StartY()-engine.Radius),
	)
	if s.ticker == nil && !s.over {
		s.board.UpdatePreview(s.aim)
	}
}

// Step applies one frame of input and advances the running shot by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	if in.Has(core.ActionRestart) && s.over {
		s.Restart()
		events = append(events, core.EventRestarted)
	}
	if in.Has(core.ActionSave) {
		events = append(events, core.EventSaveRequested)
	}

	s.applyAim(in)

	if in.Has(core.ActionPause) && s.ticker != nil {
		s.paused = !s.paused
		s.log.Debug("pause toggled", "paused", s.paused)
	}

	if in.Has(core.ActionLaunch) && s.ticker == nil && !s.over {
		s.launch()
		events = append(events, core.EventShotStarted)
	}

	if s.ticker != nil && !s.paused {
		s.ticks++
		if !s.ticker.Tick(s.board) {
			events = append(events, s.endShot()...)
		}
	}

	return core.StepResult{State: s.State(), Events: events}
}

func (s *Session) applyAim(in core.InputFrame) {
	d := engine.Vec2{}
	if in.Has(core.ActionLeft) {
		d.X -= s.opts.AimStep
	}
	if in.Has(core.ActionRight) {
		d.X += s.opts.AimStep
	}
	if in.Has(core.ActionFineLeft) {
		d.X -= s.opts.FineStep
	}
	if in.Has(core.ActionFineRight) {
		d.X += s.opts.FineStep
	}
	if in.Has(core.ActionUp) {
		d.Y -= s.opts.AimStep
	}
	if in.Has(core.ActionDown) {
		d.Y += s.opts.AimStep
	}
	if d != (engine.Vec2{}) {
		s.SetAim(s.aim.Add(d))
	}
}

func (s *Session) launch() {
	s.ticker = s.board.Start(s.aim)
	s.paused = false
	s.ticks = 0
	s.log.Debug("shot started",
		"aim", fmt.Sprintf("%.0f,%.0f", s.aim.X, s.aim.Y),
		"velocity", fmt.Sprintf("%.2f,%.2f", s.board.StartVelocity().X, s.board.StartVelocity().Y),
		"balls", s.ticker.Total())
}

// endShot commits the finished shot and grows the board by one row.
func (s *Session) endShot() []core.Event {
	t := s.ticker
	s.ticker = nil
	s.paused = false
	if err := t.Consume(s.board); err != nil {
		// A finished ticker is consumed exactly once here.
		panic(err)
	}
	s.shots++
	s.log.Debug("shot ended",
		"shot", s.shots,
		"ticks", s.ticks,
		"stopped", t.Stopped(),
		"start_x", fmt.Sprintf("%.1f", s.board.StartX()),
		"score", s.board.Score())

	events := []core.Event{core.EventShotEnded}
	if !s.board.Reset() {
		s.over = true
		s.log.Info("game over",
			"difficulty", s.board.Difficulty(),
			"score", s.board.Score(),
			"balls", s.board.BallsPerShot(),
			"shots", s.shots)
		return append(events, core.EventGameOver)
	}
	s.board.UpdatePreview(s.aim)
	return append(events, core.EventRowAdded)
}

// Restart begins a new round at the same difficulty.
func (s *Session) Restart() {
	s.board.Init(s.opts.Difficulty)
	s.board.Reset()
	s.ticker = nil
	s.paused = false
	s.over = false
	s.shots = 0
	s.board.UpdatePreview(s.aim)
	s.log.Debug("round restarted", "difficulty", s.opts.Difficulty)
}

// PlayShot fires at target and runs the shot to completion without
// rendering. It returns the number of ticks taken, or 0 if no shot could be
// fired.
func (s *Session) PlayShot(target engine.Vec2) int {
	if s.ticker != nil || s.over {
		return 0
	}
	s.SetAim(target)
	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)
	s.Step(in)
	idle := core.NewInputFrame()
	for s.ticker != nil {
		s.Step(idle)
	}
	return s.ticks
}

// State summarizes the session for the front-end.
func (s *Session) State() core.GameState {
	st := core.GameState{
		Score:        s.board.Score(),
		Difficulty:   s.board.Difficulty().Title(),
		BallsPerShot: s.board.BallsPerShot(),
		DoubleScore:  s.board.DoubleScore(),
		GameOver:     s.over,
		Paused:       s.paused,
	}
	if s.ticker != nil {
		st.Shooting = true
		st.InFlight = s.ticker.Total() - s.ticker.Stopped()
	}
	return st
}

// Record encodes the board and running shot.
func (s *Session) Record() []byte {
	return engine.Encode(s.board, s.ticker)
}

// Restore replaces the session state with a decoded record. A record taken
// mid-shot resumes paused when StartPaused is set. On error the current
// state is kept.
func (s *Session) Restore(record []byte) error {
	b, t, err := engine.Decode(record, s.src)
	if err != nil {
		return fmt.Errorf("game: restore: %w", err)
	}
	s.board = b
	s.ticker = t
	s.paused = t != nil && s.opts.StartPaused
	s.over = t == nil && b.IsOver()
	s.opts.Difficulty = b.Difficulty()
	s.shots = 0
	s.ticks = 0
	if t == nil {
		s.board.UpdatePreview(s.aim)
	}
	s.log.Info("record restored",
		"difficulty", b.Difficulty(),
		"score", b.Score(),
		"balls", b.BallsPerShot(),
		"mid_shot", t != nil)
	return nil
}
