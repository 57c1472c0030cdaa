package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-starfield/internal/texture"
)

// Theme contains the configurable visual styles of the preview.
type Theme struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDError     lipgloss.Style
	Help         lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// Ship marker drawn at the frame centre
	Ship     texture.Color
	ShipIdle texture.Color // Ship outside the focus set
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDError:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Help:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Ship:     texture.Color{R: 255, G: 170, B: 40, A: 255},
		ShipIdle: texture.Color{R: 110, G: 110, B: 120, A: 255},
	}
}
