package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-balls/internal/engine"
	"github.com/vovakirdan/tui-balls/internal/storage"
)

const (
	statsPanelMinWidth = 84 // Narrower screens drop the stats panel
	statsPanelWidth    = 24
	scoreboardLimit    = 100
)

// statsSource is implemented by stores that can aggregate a difficulty.
type statsSource interface {
	DifficultyStats(difficulty string) (*storage.Stats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next difficulty")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev difficulty")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best rounds of one difficulty at a time.
type ScoreboardModel struct {
	tabs      []engine.Difficulty
	tabCursor int
	store     ScoreStore // may be nil
	scores    []scoreRow
	stats     *storage.Stats // nil when the store cannot aggregate
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

type scoreRow struct {
	score  int64
	balls  int
	player string
	date   string
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("93")).Padding(0, 1)
	sbFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// NewScoreboardModel creates a new scoreboard model opened on the tab of
// difficulty d.
func NewScoreboardModel(store ScoreStore, d engine.Difficulty, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		tabs:   engine.Difficulties,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if d.Valid() {
		m.tabCursor = int(d)
	}
	m.table = m.newTable()
	m.refresh()
	return m
}

func (m ScoreboardModel) showStats() bool {
	return m.width >= statsPanelMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	playerW := 10
	if room := m.width - 60; room > playerW {
		playerW = min(room, 20)
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 10},
		{Title: "Balls", Width: 6},
		{Title: "Player", Width: playerW},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("93")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// refresh reloads the rows and stats of the current tab.
func (m *ScoreboardModel) refresh() {
	m.scores = nil
	m.stats = nil
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	d := m.tabs[m.tabCursor].String()
	if entries, err := m.store.TopScores(d, scoreboardLimit); err == nil {
		for _, e := range entries {
			m.scores = append(m.scores, scoreRow{
				score:  e.Score,
				balls:  e.Balls,
				player: e.Player,
				date:   e.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	if src, ok := m.store.(statsSource); ok {
		if st, err := src.DifficultyStats(d); err == nil {
			m.stats = st
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.score),
			fmt.Sprint(s.balls),
			s.player,
			s.date,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tabCursor = (m.tabCursor + len(m.tabs) - 1) % len(m.tabs)
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("HIGH SCORES - %s", m.tabs[m.tabCursor].Title())
	b.WriteString(centerText(sbTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabStrip(), m.width))
	b.WriteString("\n\n")

	body := sbFrameStyle.Render(m.tableView())
	if m.showStats() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.statsPanel())
	}
	b.WriteString(centerText(body, m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabStrip() string {
	tabs := make([]string, len(m.tabs))
	for i, d := range m.tabs {
		if i == m.tabCursor {
			tabs[i] = sbActiveStyle.Render(d.Title())
		} else {
			tabs[i] = sbTabStyle.Render(d.Title())
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.tabs[m.tabCursor].Title())
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return sbEmptyStyle.Render("No scores recorded yet.\nFinish a round to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsPanel() string {
	var b strings.Builder
	b.WriteString(sbTitleStyle.Render("Stats"))
	b.WriteString("\n\n")
	if m.stats == nil || m.stats.Rounds == 0 {
		b.WriteString("No rounds yet")
	} else {
		fmt.Fprintf(&b, "Rounds     %d\n", m.stats.Rounds)
		fmt.Fprintf(&b, "Best       %d\n", m.stats.HighScore)
		fmt.Fprintf(&b, "Average    %.1f\n", m.stats.AvgScore)
		fmt.Fprintf(&b, "Max balls  %d\n", m.stats.MaxBalls)
		if !m.stats.LastPlayed.IsZero() {
			fmt.Fprintf(&b, "Last       %s", m.stats.LastPlayed.Format("Jan 02"))
		}
	}
	return sbFrameStyle.Width(statsPanelWidth).Render(b.String())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen opened on difficulty d.
// goBack is false when the user quit instead.
func RunScoreboard(store ScoreStore, d engine.Difficulty, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, d, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
