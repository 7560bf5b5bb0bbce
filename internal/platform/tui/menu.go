package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-balls/internal/core"
	"github.com/vovakirdan/tui-balls/internal/engine"
)

// MenuItemKind is what a menu entry does when selected.
type MenuItemKind int

const (
	MenuNewGame MenuItemKind = iota
	MenuContinue
	MenuScores
	MenuQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Kind       MenuItemKind
	Difficulty engine.Difficulty // For MenuNewGame
	Title      string
	Note       string // Dimmed text after the title
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	message        string
	quitting       bool
	selected       *MenuItem // Set when user selects an entry
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on the new
// game entry for defaultDifficulty.
func NewMenuModel(deps Deps, cfg core.RuntimeConfig, defaultDifficulty engine.Difficulty) MenuModel {
	var items []MenuItem
	if deps.Saves != nil && deps.QuickSlot != "" && deps.Saves.Exists(deps.QuickSlot) {
		items = append(items, MenuItem{
			Kind:  MenuContinue,
			Title: "Continue",
			Note:  deps.QuickSlot,
		})
	}

	cursor := len(items)
	for _, d := range engine.Difficulties {
		item := MenuItem{
			Kind:       MenuNewGame,
			Difficulty: d,
			Title:      "New game: " + d.Title(),
		}
		if deps.Scores != nil {
			if high, err := deps.Scores.HighScore(d.String()); err == nil && high > 0 {
				item.Note = fmt.Sprintf("best %d", high)
			}
		}
		if d == defaultDifficulty {
			cursor = len(items)
		}
		items = append(items, item)
	}
	items = append(items,
		MenuItem{Kind: MenuScores, Title: "High scores"},
		MenuItem{Kind: MenuQuit, Title: "Quit"},
	)

	return MenuModel{
		items:  items,
		cursor: cursor,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		switch selected.Kind {
		case MenuQuit:
			m.quitting = true
		case MenuScores:
			m.openScoreboard = true
		default:
			m.selected = &selected
		}
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuNoteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  B A L L S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Clear the blocks before they reach the floor", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		if item.Note != "" {
			line += "  " + menuNoteStyle.Render(item.Note)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(centerText(menuErrorStyle.Render(m.message), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuNoteStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// WithMessage returns the menu showing msg under the entries.
func (m MenuModel) WithMessage(msg string) MenuModel {
	m.message = msg
	return m
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      engine.Difficulty
	Continue        bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result. message, if
// set, is shown under the entries.
func RunMenu(deps Deps, cfg core.RuntimeConfig, defaultDifficulty engine.Difficulty, message string) (MenuResult, error) {
	model := NewMenuModel(deps, cfg, defaultDifficulty).WithMessage(message)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}

// Result summarizes what the user chose.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.Difficulty = m.Selected().Difficulty
		result.Continue = m.Selected().Kind == MenuContinue
	default:
		result.Quit = true
	}
	return result
}
