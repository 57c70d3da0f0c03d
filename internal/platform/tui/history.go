package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the pilot sidebar
	sidebarWidth       = 20  // Width of pilot sidebar
	maxEpisodes        = 200 // Max episodes to load per pilot
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPilot key.Binding
	PrevPilot key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPilot, k.PrevPilot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextPilot, k.PrevPilot, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPilot: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pilot"),
		),
		PrevPilot: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pilot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing the episode journal.
type HistoryModel struct {
	store       *storage.Store
	pilots      []string
	cursor      int
	episodes    []storage.EpisodeEntry
	stats       *storage.EpisodeStats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history model. When pilot is non-empty it is selected first.
func NewHistoryModel(store *storage.Store, pilot string, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if pilots, err := store.Pilots(); err == nil {
			m.pilots = pilots
		}
	}
	for i, p := range m.pilots {
		if p == pilot {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Fruits", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "Reward", Width: 8},
		{Title: "End", Width: 6},
		{Title: "Board", Width: 9},
		{Title: "When", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) current() string {
	if len(m.pilots) == 0 {
		return ""
	}
	return m.pilots[m.cursor]
}

// load reads episodes and stats for the selected pilot.
func (m *HistoryModel) load() {
	m.episodes, m.stats = nil, nil
	if m.store != nil && m.current() != "" {
		if eps, err := m.store.EpisodesByPilot(m.current(), maxEpisodes); err == nil {
			m.episodes = eps
		}
		if st, err := m.store.Stats(m.current()); err == nil {
			m.stats = st
		}
	}
	m.table.SetRows(EpisodeRows(m.episodes))
	m.table.GotoTop()
}

// EpisodeRows formats journal entries as table rows.
func EpisodeRows(eps []storage.EpisodeEntry) []table.Row {
	rows := make([]table.Row, len(eps))
	for i, e := range eps {
		board := fmt.Sprintf("%d", e.TileCount)
		if e.Walls {
			board += " W"
		}
		if e.FixedTail {
			board += " F"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID),
			fmt.Sprintf("%d", e.Fruits),
			fmt.Sprintf("%d", e.Ticks),
			fmt.Sprintf("%.1f", e.Reward),
			e.Cause,
			board,
			e.EndedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPilot):
			if len(m.pilots) > 0 {
				m.cursor = (m.cursor + 1) % len(m.pilots)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPilot):
			if len(m.pilots) > 0 {
				m.cursor = (m.cursor - 1 + len(m.pilots)) % len(m.pilots)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(EpisodeRows(m.episodes))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "EPISODE JOURNAL"
	if p := m.current(); p != "" {
		title += " - " + p
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderStats() string {
	if m.stats == nil || m.stats.Episodes == 0 {
		return ""
	}
	s := m.stats
	return fmt.Sprintf("%d episodes · best %d fruits · avg %.1f fruits, %.0f ticks, reward %.2f",
		s.Episodes, s.BestFruits, s.AvgFruits, s.AvgTicks, s.AvgReward)
}

func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pilots\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.pilots {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + p))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.episodes) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No episodes recorded yet.\nPlay or train to fill the journal!")
	}

	return m.table.View()
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, pilot string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, pilot, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
