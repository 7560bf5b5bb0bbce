package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-balls/internal/core"
	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/storage"
)

// statusTicks is how long a status message stays on the help line.
const statusTicks = 200

// ScoreStore is the score table as seen by the front-end.
type ScoreStore interface {
	SaveScore(difficulty string, score uint64, balls int, player string) (int64, error)
	TopScores(difficulty string, limit int) ([]storage.ScoreEntry, error)
	HighScore(difficulty string) (int64, error)
}

// SlotStore holds named save records.
type SlotStore interface {
	Save(slot string, record []byte) error
	Load(slot string) ([]byte, error)
	Exists(slot string) bool
}

// Deps are the services shared by the views. Scores and Saves may be nil.
type Deps struct {
	Scores         ScoreStore
	Saves          SlotStore
	Logger         *log.Logger
	Player         string
	QuickSlot      string
	AutosaveOnQuit bool
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// GameModel is the Bubble Tea model for one round.
type GameModel struct {
	session    *game.Session
	screen     *core.Screen
	deps       Deps
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	input      core.InputFrame
	state      core.GameState
	status     string
	statusTTL  int
	standalone bool // Back quits the program
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a game view around an existing session.
func NewGameModel(session *game.Session, deps Deps, cfg core.RuntimeConfig) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW
	return GameModel{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		deps:    deps,
		config:  cfg,
		keys:    DefaultGameKeyMap(),
		help:    h,
		input:   core.NewInputFrame(),
		state:   session.State(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.autosave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		// Leaving mid-shot requires a pause first.
		if m.state.Shooting && !m.state.Paused {
			return m, nil
		}
		m.autosave()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.input.Set(a)
	}
	return m, nil
}

// handleMouse aims with pointer motion, launches with a left click and
// toggles pause with a right click.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	vp := m.session.Viewport(m.screen.Width(), m.screen.Height())
	if !vp.Inner.Contains(msg.X, msg.Y) {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.session.SetAim(vp.World(msg.X, msg.Y))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.session.SetAim(vp.World(msg.X, msg.Y))
		m.input.Set(core.ActionLaunch)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.input.Set(core.ActionPause)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.session.Step(m.input)
	m.state = result.State
	m.input.Clear()

	for _, e := range result.Events {
		switch e {
		case core.EventSaveRequested:
			m.quickSave()
		case core.EventGameOver:
			m.recordScore()
		case core.EventRestarted:
			m.scoreSaved = false
			m.setStatus("new round")
		}
	}

	if m.statusTTL > 0 {
		m.statusTTL--
		if m.statusTTL == 0 {
			m.status = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusTTL = statusTicks
}

// quickSave writes the current record to the quick slot.
func (m *GameModel) quickSave() {
	if m.deps.Saves == nil || m.deps.QuickSlot == "" {
		m.setStatus("saving is not available here")
		return
	}
	if err := m.deps.Saves.Save(m.deps.QuickSlot, m.session.Record()); err != nil {
		m.deps.logger().Error("quick save failed", "slot", m.deps.QuickSlot, "err", err)
		m.setStatus("save failed")
		return
	}
	m.deps.logger().Info("saved", "slot", m.deps.QuickSlot, "score", m.session.Board().Score())
	m.setStatus(fmt.Sprintf("saved to %s", m.deps.QuickSlot))
}

// autosave keeps an unfinished round in the quick slot on exit.
func (m *GameModel) autosave() {
	if !m.deps.AutosaveOnQuit || m.deps.Saves == nil || m.deps.QuickSlot == "" || m.session.Over() {
		return
	}
	if err := m.deps.Saves.Save(m.deps.QuickSlot, m.session.Record()); err != nil {
		m.deps.logger().Error("autosave failed", "slot", m.deps.QuickSlot, "err", err)
	}
}

// recordScore stores the finished round once.
func (m *GameModel) recordScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	b := m.session.Board()
	if m.deps.Scores == nil || b.Score() == 0 {
		return
	}
	if _, err := m.deps.Scores.SaveScore(b.Difficulty().String(), b.Score(), b.BallsPerShot(), m.deps.Player); err != nil {
		m.deps.logger().Error("could not save score", "err", err)
		return
	}
	m.setStatus(fmt.Sprintf("score %d recorded", b.Score()))
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	footer := helpStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Session returns the driven game session.
func (m GameModel) Session() *game.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one session in the terminal until the user quits or goes
// back. backToMenu reports which of the two ended it.
func Run(session *game.Session, deps Deps, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(session, deps, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
