package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-starfield/internal/registry"
)

// MenuItem represents a selectable preset in the menu.
type MenuItem struct {
	PresetID    string
	Title       string
	Description string
}

// MenuModel is the Bubble Tea model for the preset picker menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	theme    Theme
	quitting bool
	selected *MenuItem // Set when user selects a preset
}

// NewMenuModel creates a menu listing every registered preset.
func NewMenuModel(width, height int) MenuModel {
	presets := registry.List()
	items := make([]MenuItem, 0, len(presets))
	for _, p := range presets {
		items = append(items, MenuItem{
			PresetID:    p.ID,
			Title:       p.Title,
			Description: p.Description,
		})
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		theme:  DefaultTheme(),
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
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("  S T A R F I E L D  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a preset", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+item.Title), m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
