package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-starfield/internal/storage"
)

// Catalog layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show batch list sidebar
	sidebarWidth       = 24 // Width of batch list sidebar
	maxBatches         = 50 // Max batches to load
)

// CatalogStore is the part of storage.Store the browser reads.
type CatalogStore interface {
	Batches(limit int) ([]storage.BatchSummary, error)
	LayersInBatch(batchID string) ([]storage.LayerRecord, error)
}

// CatalogKeyMap defines the key bindings for the catalog browser.
type CatalogKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBatch key.Binding
	PrevBatch key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CatalogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBatch, k.PrevBatch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CatalogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBatch, k.PrevBatch},
		{k.Quit},
	}
}

// DefaultCatalogKeyMap returns default key bindings.
func DefaultCatalogKeyMap() CatalogKeyMap {
	return CatalogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBatch: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next batch"),
		),
		PrevBatch: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev batch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CatalogModel is the Bubble Tea model for browsing generated textures.
type CatalogModel struct {
	store       CatalogStore
	batches     []storage.BatchSummary
	cursor      int // Currently selected batch index
	layers      []storage.LayerRecord
	table       table.Model
	help        help.Model
	keys        CatalogKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	showSidebar bool
}

// NewCatalogModel creates a new catalog browser.
func NewCatalogModel(store CatalogStore, width, height int) CatalogModel {
	h := help.New()
	h.ShowAll = false

	m := CatalogModel{
		store:       store,
		keys:        DefaultCatalogKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	if store != nil {
		m.batches, m.err = store.Batches(maxBatches)
	}
	if len(m.batches) > 0 {
		m.loadLayers(m.batches[0].BatchID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *CatalogModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Layer", Width: 6},
		{Title: "Size", Width: 10},
		{Title: "Stars", Width: 6},
		{Title: "Radius", Width: 7},
		{Title: "Format", Width: 7},
		{Title: "Bytes", Width: 9},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadLayers loads the layers of the given batch.
func (m *CatalogModel) loadLayers(batchID string) {
	if m.store == nil {
		m.layers = nil
		m.updateTableRows()
		return
	}

	layers, err := m.store.LayersInBatch(batchID)
	if err != nil {
		m.err = err
		m.layers = nil
	} else {
		m.layers = layers
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current layers.
func (m *CatalogModel) updateTableRows() {
	m.table.SetRows(layerRows(m.layers))
	m.table.GotoTop()
}

// layerRows formats catalog records as table rows.
func layerRows(layers []storage.LayerRecord) []table.Row {
	rows := make([]table.Row, len(layers))
	for i, l := range layers {
		rows[i] = table.Row{
			fmt.Sprintf("%d", l.ID),
			fmt.Sprintf("%d", l.LayerIndex),
			fmt.Sprintf("%dx%d", l.Width, l.Height),
			fmt.Sprintf("%d", l.Density),
			fmt.Sprintf("%d", l.StarSize),
			l.Format,
			humanize.Bytes(uint64(len(l.Data))),
		}
	}
	return rows
}

// Init initializes the catalog model.
func (m CatalogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the catalog browser.
func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextBatch):
			if len(m.batches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.batches)
				m.loadLayers(m.batches[m.cursor].BatchID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevBatch):
			if len(m.batches) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.batches) - 1
				}
				m.loadLayers(m.batches[m.cursor].BatchID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the catalog browser.
func (m CatalogModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "TEXTURE CATALOG"
	if batch, ok := m.Current(); ok {
		title = fmt.Sprintf("TEXTURE CATALOG - %s seed %d", batch.Preset, batch.Seed)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		if batch, ok := m.Current(); ok {
			b.WriteString(centerText(fmt.Sprintf("< %s >", shortID(batch.BatchID)), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(tableRendered)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(DefaultTheme().HUDError.Render(m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the batch list.
func (m CatalogModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Batches\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, batch := range m.batches {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s%s %s", cursor, shortID(batch.BatchID), humanize.Time(batch.CreatedAt))
		sidebar.WriteString(style.Render(line))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m CatalogModel) renderTableContent() string {
	if len(m.layers) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No textures recorded yet.\nRun 'starfield generate' to add some!")
	}

	return m.table.View()
}

// Current returns the selected batch.
func (m CatalogModel) Current() (storage.BatchSummary, bool) {
	if len(m.batches) == 0 {
		return storage.BatchSummary{}, false
	}
	return m.batches[m.cursor], true
}

// Layers returns the layers of the selected batch.
func (m CatalogModel) Layers() []storage.LayerRecord {
	return m.layers
}

// shortID returns the first block of a UUID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunCatalog runs the catalog browser.
func RunCatalog(store CatalogStore, width, height int) error {
	p := tea.NewProgram(
		NewCatalogModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
