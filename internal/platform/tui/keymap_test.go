package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapCommand(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Command
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.CommandUp},
		{"w", runeKey('w'), core.CommandUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.CommandDown},
		{"s", runeKey('s'), core.CommandDown},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.CommandLeft},
		{"a", runeKey('a'), core.CommandLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.CommandRight},
		{"d", runeKey('d'), core.CommandRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.CommandPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.CommandReset},
		{"r", runeKey('r'), core.CommandReset},
		{"walls toggle is not a command", runeKey('x'), core.CommandNone},
		{"quit is not a command", runeKey('q'), core.CommandNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Command(tc.msg); got != tc.want {
				t.Errorf("Command(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}

	seen := 0
	for _, group := range km.FullHelp() {
		seen += len(group)
	}
	if seen != 14 {
		t.Errorf("FullHelp() lists %d bindings, expected all 14", seen)
	}
}
