package parallax

import (
	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/focus"
)

// Field ties a Manager to the entity collaborators: once per tick it drains
// focus notifications, locates the focused entity and scrolls the layers.
type Field struct {
	manager *Manager
	tracker *focus.Tracker
	query   focus.Query
	locator focus.Locator
	err     error
}

// NewField creates a field for an already configured manager.
func NewField(m *Manager, q focus.Query, l focus.Locator) *Field {
	return &Field{
		manager: m,
		tracker: focus.NewTracker(),
		query:   q,
		locator: l,
	}
}

// Manager returns the underlying layer manager.
func (f *Field) Manager() *Manager {
	return f.manager
}

// Attach builds the layers. See Manager.Attach.
func (f *Field) Attach(altitude float64, rng core.RandomSource) error {
	return f.manager.Attach(altitude, rng)
}

// Detach releases the layers. Focus state survives a detach.
func (f *Field) Detach() {
	f.manager.Detach()
}

// Update runs one tick. It does nothing while detached. A focus consistency
// error is returned and remembered: every later Update returns it again and
// the layers stay where they were.
func (f *Field) Update() error {
	if f.err != nil {
		return f.err
	}
	if !f.manager.Attached() {
		return nil
	}

	if err := f.tracker.Apply(f.query.Drain()); err != nil {
		f.err = err
		f.manager.logger.Error("focus tracking failed", "error", err)
		return err
	}

	pos, ok := f.tracker.Locate(f.locator)
	f.manager.Tick(pos, ok)
	return nil
}

// Focused returns the entity currently driving the scroll.
func (f *Field) Focused() (focus.Entity, bool) {
	return f.tracker.Focused()
}

// Err returns the fatal error that stopped the field, if any.
func (f *Field) Err() error {
	return f.err
}
