package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-starfield/internal/core"
)

// PreviewKeyMap defines the key bindings of the preview.
type PreviewKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Focus key.Binding
	Help  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Focus, k.Help, k.Back, k.Quit},
	}
}

// DefaultPreviewKeyMap returns default key bindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/up", "forward"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "back"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/left", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "right"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle focus"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "presets"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a preview action.
func (k PreviewKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Focus):
		return core.ActionToggleFocus
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	}
	return MenuActionNone
}
