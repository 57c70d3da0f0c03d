package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/pilot"
)

// KeyboardChoice is the menu entry for playing without a pilot.
const KeyboardChoice = "keyboard"

// MenuKeyMap defines the pilot menu bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default pilot menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// PilotMenuModel lets the user choose who steers the snake.
type PilotMenuModel struct {
	choices  []pilot.Info
	cursor   int
	width    int
	keys     MenuKeyMap
	chosen   string
	quitting bool
}

// NewPilotMenuModel lists keyboard play followed by every registered pilot.
func NewPilotMenuModel(width int) PilotMenuModel {
	choices := append([]pilot.Info{{Name: KeyboardChoice, Description: "Steer with the arrow keys"}}, pilot.List()...)
	return PilotMenuModel{
		choices: choices,
		width:   width,
		keys:    DefaultMenuKeyMap(),
	}
}

// Init initializes the model.
func (m PilotMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PilotMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = m.choices[m.cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the menu.
func (m PilotMenuModel) View() string {
	if m.quitting || m.chosen != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Who is playing?", m.width))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, c := range m.choices {
		nameWidth = max(nameWidth, len(c.Name))
	}
	for i, c := range m.choices {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-*s  %s", cursor, nameWidth, c.Name, c.Description)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q: Quit", m.width))
	return b.String()
}

// Chosen returns the selected name and whether a choice was made.
func (m PilotMenuModel) Chosen() (string, bool) {
	return m.chosen, m.chosen != ""
}

func centerText(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// RunPilotMenu shows the pilot menu. It returns "" for keyboard play and
// ok=false when the user quit without choosing.
func RunPilotMenu(cfg core.RuntimeConfig) (name string, ok bool, err error) {
	p := tea.NewProgram(NewPilotMenuModel(cfg.ScreenW), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isMenu := final.(PilotMenuModel)
	if !isMenu {
		return "", false, nil
	}
	name, ok = m.Chosen()
	if name == KeyboardChoice {
		name = ""
	}
	return name, ok, nil
}
