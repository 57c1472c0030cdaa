package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-starfield/internal/registry"
)

// SessionOptions configures a menu + preview session.
type SessionOptions struct {
	Seed     int64 // 0 = time based
	Width    int
	Height   int
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
}

// SessionModel manages the full session flow: menu -> preview -> menu.
// This is the top-level model used for SSH sessions and `starfield preview`
// without a preset.
type SessionModel struct {
	opts      SessionOptions
	menu      MenuModel
	preview   *PreviewModel
	inPreview bool
	quitting  bool
	err       error
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	if m.inPreview && m.preview != nil {
		return m.updatePreview(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	preset, err := registry.Create(selected.PresetID)
	if err != nil {
		// Shouldn't happen since menu only shows registered presets
		m.err = err
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, nil
	}

	preview, err := NewPreviewModel(PreviewOptions{
		Config:   preset.Config(),
		Preset:   preset.ID(),
		Seed:     m.opts.Seed,
		Width:    m.opts.Width,
		Height:   m.opts.Height,
		Logger:   m.opts.Logger,
		Renderer: m.opts.Renderer,
	})
	if err != nil {
		m.err = fmt.Errorf("preset %s: %w", preset.ID(), err)
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, nil
	}

	m.err = nil
	m.preview = &preview
	m.inPreview = true
	return m, m.preview.Init()
}

// updatePreview handles updates when a preview is running.
func (m SessionModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.preview.Update(msg)
	if previewModel, ok := newModel.(PreviewModel); ok {
		m.preview = &previewModel
	}

	if m.preview.BackToMenu() {
		m.inPreview = false
		m.preview = nil
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	}

	if m.preview.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inPreview && m.preview != nil {
		return m.preview.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(DefaultTheme().HUDError.Render(m.err.Error()), m.opts.Width)
	}
	return view
}

// InPreview reports whether a preview is running.
func (m SessionModel) InPreview() bool {
	return m.inPreview
}

// RunSession runs the menu + preview flow in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
