// Package focus keeps track of the single entity whose position drives the
// starfield scroll.
package focus

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-starfield/internal/core"
)

// ErrFocusConsistency signals that the entity query delivered notifications
// that contradict the tracked state. It is fatal for the field.
var ErrFocusConsistency = errors.New("focus: consistency violation")

// EntityID identifies an entity owned by the external entity store.
type EntityID string

// Entity is a reference to an external entity. Only the identity is kept.
type Entity struct {
	ID EntityID
}

// Batch is the set of notifications delivered once per tick.
type Batch struct {
	Added   []Entity
	Removed []Entity
}

// Empty reports whether the batch carries no notifications.
func (b Batch) Empty() bool {
	return len(b.Added) == 0 && len(b.Removed) == 0
}

// Query is the entity-query collaborator. Drain returns the entities that
// entered or left the subscribed capability set since the previous call.
type Query interface {
	Drain() Batch
}

// Locator reads the current world position of an entity.
type Locator interface {
	Position(id EntityID) (core.Vec3, bool)
}

// Tracker holds at most one focused entity and its last known position.
// It is not safe for concurrent use.
type Tracker struct {
	entity   Entity
	tracking bool
	position core.Vec3
	located  bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Apply processes one batch: removals first, then additions.
func (t *Tracker) Apply(b Batch) error {
	if len(b.Removed) > 1 {
		return fmt.Errorf("%w: %d entities removed in one batch", ErrFocusConsistency, len(b.Removed))
	}
	if len(b.Added) > 1 {
		return fmt.Errorf("%w: %d entities added in one batch", ErrFocusConsistency, len(b.Added))
	}

	if len(b.Removed) == 1 {
		removed := b.Removed[0]
		if !t.tracking {
			return fmt.Errorf("%w: unknown entity %q removed while nothing has focus", ErrFocusConsistency, removed.ID)
		}
		if removed.ID != t.entity.ID {
			return fmt.Errorf("%w: unknown entity, expected %q found %q", ErrFocusConsistency, t.entity.ID, removed.ID)
		}
		t.clear()
	}

	if len(b.Added) == 1 {
		if t.tracking {
			return fmt.Errorf("%w: already have entity %q with focus", ErrFocusConsistency, t.entity.ID)
		}
		t.entity = b.Added[0]
		t.tracking = true
	}

	return nil
}

// Locate refreshes the cached position of the focused entity.
// It returns false when nothing is focused or the locator does not know it.
func (t *Tracker) Locate(l Locator) (core.Vec3, bool) {
	if !t.tracking {
		return core.Vec3{}, false
	}
	pos, ok := l.Position(t.entity.ID)
	if !ok {
		return t.position, false
	}
	t.position = pos
	t.located = true
	return pos, true
}

// Focused returns the tracked entity.
func (t *Tracker) Focused() (Entity, bool) {
	return t.entity, t.tracking
}

// Position returns the last cached position of the tracked entity.
func (t *Tracker) Position() (core.Vec3, bool) {
	return t.position, t.tracking && t.located
}

// Reset drops any tracked entity.
func (t *Tracker) Reset() {
	t.clear()
}

func (t *Tracker) clear() {
	t.entity = Entity{}
	t.tracking = false
	t.position = core.Vec3{}
	t.located = false
}
