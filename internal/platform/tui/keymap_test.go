package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-starfield/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewKeyMapAction(t *testing.T) {
	km := DefaultPreviewKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w", runeKey("w"), core.ActionUp},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s", runeKey("s"), core.ActionDown},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"a", runeKey("a"), core.ActionLeft},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runeKey("d"), core.ActionRight},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"f", runeKey("f"), core.ActionToggleFocus},
		{"?", runeKey("?"), core.ActionHelp},
		{"b", runeKey("b"), core.ActionBack},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestPreviewKeyMapHelp(t *testing.T) {
	km := DefaultPreviewKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	var n int
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 8 {
		t.Errorf("FullHelp lists %d bindings, want 8", n)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
