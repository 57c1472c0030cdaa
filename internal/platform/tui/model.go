package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-starfield/internal/config"
	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/focus"
	"github.com/vovakirdan/tui-starfield/internal/parallax"
	"github.com/vovakirdan/tui-starfield/internal/texture"
	"github.com/vovakirdan/tui-starfield/internal/world"
)

// ShipID is the entity the preview moves around.
const ShipID focus.EntityID = "ship"

// hudLines is the number of rows reserved below the frame in short help mode.
const hudLines = 2

// PreviewOptions configures a preview.
type PreviewOptions struct {
	Config   config.StarFieldConfig
	Preset   string
	Seed     int64 // 0 = time based
	Width    int   // Terminal columns
	Height   int   // Terminal rows
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // nil = default renderer
}

// PreviewModel is the Bubble Tea model of the animated starfield preview.
// A ship entity lives in an in-memory world; the parallax field follows it
// while it carries every focus capability.
type PreviewModel struct {
	world    *world.World
	field    *parallax.Field
	keys     PreviewKeyMap
	help     help.Model
	theme    Theme
	renderer *lipgloss.Renderer
	input    core.InputFrame

	preset     string
	width      int
	height     int
	tickRate   int
	shipSpeed  float64
	background texture.Color
	ticks      int

	err        error
	quitting   bool
	backToMenu bool
	standalone bool // Back quits instead of returning to a menu
}

// NewPreviewModel builds the world and generates every layer texture.
func NewPreviewModel(opts PreviewOptions) (PreviewModel, error) {
	settings, err := opts.Config.ToSettings()
	if err != nil {
		return PreviewModel{}, err
	}

	mgr := parallax.NewManager(parallax.WithLogger(opts.Logger))
	if err := mgr.Configure(settings); err != nil {
		return PreviewModel{}, err
	}

	w := world.New()
	if err := w.Spawn(ShipID, world.FocusCapabilities, core.Vec3{}); err != nil {
		return PreviewModel{}, err
	}

	field := parallax.NewField(mgr, w.Subscribe(world.FocusCapabilities), w)
	rng := core.RuntimeConfig{Seed: opts.Seed}.RNG()
	if err := field.Attach(opts.Config.Camera.Altitude, rng); err != nil {
		return PreviewModel{}, fmt.Errorf("attach starfield: %w", err)
	}

	tickRate := opts.Config.Preview.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	return PreviewModel{
		world:      w,
		field:      field,
		keys:       DefaultPreviewKeyMap(),
		help:       h,
		theme:      DefaultTheme(),
		renderer:   opts.Renderer,
		input:      core.NewInputFrame(),
		preset:     opts.Preset,
		width:      width,
		height:     height,
		tickRate:   tickRate,
		shipSpeed:  opts.Config.Preview.ShipSpeed,
		background: opts.Config.BackgroundColor(),
	}, nil
}

// Init starts the tick loop.
func (m PreviewModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PreviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.field.Detach()
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		m.field.Detach()
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleTick applies input to the world and advances the field one tick.
func (m PreviewModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.input.Has(core.ActionToggleFocus) {
		m.toggleFocus()
	}

	dir := m.input.Direction()
	if dir != (core.Vec3{}) {
		//nolint:errcheck // The ship is never despawned
		m.world.Move(ShipID, core.Vec3{X: dir.X * m.shipSpeed, Z: dir.Z * m.shipSpeed})
	}

	if err := m.field.Update(); err != nil {
		m.err = err
	}

	m.ticks++
	m.input.Clear()
	return m, tickCmd(m.tickRate)
}

// toggleFocus moves the ship in or out of the player-controlled set.
func (m *PreviewModel) toggleFocus() {
	caps, ok := m.world.Capabilities(ShipID)
	if !ok {
		return
	}
	if caps.Has(world.PlayerControlled) {
		caps &^= world.PlayerControlled
	} else {
		caps |= world.PlayerControlled
	}
	//nolint:errcheck // The ship is never despawned
	m.world.SetCapabilities(ShipID, caps)
}

// View renders the frame, the HUD line and the help bar.
func (m PreviewModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	helpView := m.theme.Help.Render(m.help.View(m.keys))
	rows := m.height - 1 - lipgloss.Height(helpView)
	if rows < 1 {
		rows = 1
	}

	frame := Compose(m.field.Manager().Layers(), m.width, rows*2, m.background)
	ship := m.theme.ShipIdle
	if _, ok := m.field.Focused(); ok {
		ship = m.theme.Ship
	}
	drawShip(frame, ship)

	var b strings.Builder
	b.WriteString(RenderFrame(m.renderer, frame))
	b.WriteString("\n")
	b.WriteString(m.renderHUD())
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

// renderHUD renders the status line.
func (m PreviewModel) renderHUD() string {
	t := m.theme
	sep := t.HUDSeparator.Render(" | ")

	title := "STARFIELD"
	if m.preset != "" {
		title = fmt.Sprintf("STARFIELD %s", strings.ToUpper(m.preset))
	}

	pos, _ := m.world.Position(ShipID)
	focusState := "tracking"
	if _, ok := m.field.Focused(); !ok {
		focusState = "frozen"
	}

	parts := []string{
		t.HUDTitle.Render(title),
		t.HUDLabel.Render("pos ") + t.HUDValue.Render(fmt.Sprintf("%.1f,%.1f", pos.X, pos.Z)),
		t.HUDLabel.Render("focus ") + t.HUDValue.Render(focusState),
		t.HUDLabel.Render("layers ") + t.HUDValue.Render(fmt.Sprintf("%d", len(m.field.Manager().Layers()))),
	}
	if m.err != nil {
		parts = append(parts, t.HUDError.Render(m.err.Error()))
	}
	return strings.Join(parts, sep)
}

// Err returns the focus error that stopped the field, if any.
func (m PreviewModel) Err() error {
	return m.err
}

// Ticks returns the number of simulation ticks run.
func (m PreviewModel) Ticks() int {
	return m.ticks
}

// IsQuitting returns true if user requested to quit entirely.
func (m PreviewModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested the preset menu.
func (m PreviewModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPreview starts the Bubble Tea program for a single preview.
func RunPreview(opts PreviewOptions) error {
	model, err := NewPreviewModel(opts)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
