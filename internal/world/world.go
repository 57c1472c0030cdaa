// Package world is a small in-memory entity store. It plays the part of the
// entity-query and location collaborators for the preview and the SSH server.
package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/focus"
)

var (
	ErrEntityExists  = errors.New("world: entity already exists")
	ErrEntityUnknown = errors.New("world: unknown entity")
)

// Capability is a bit set of component types an entity carries.
type Capability uint8

const (
	HasPosition Capability = 1 << iota
	HasVisual
	PlayerControlled

	// FocusCapabilities is the set the starfield subscribes to.
	FocusCapabilities = HasPosition | HasVisual | PlayerControlled
)

// Has reports whether c contains every bit of want.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

type entity struct {
	caps Capability
	pos  core.Vec3
}

// World holds entities and notifies subscriptions when entities enter or
// leave their capability set. It is not safe for concurrent use.
type World struct {
	entities map[focus.EntityID]*entity
	subs     []*Subscription
}

// New creates an empty world.
func New() *World {
	return &World{entities: make(map[focus.EntityID]*entity)}
}

// Spawn adds an entity.
func (w *World) Spawn(id focus.EntityID, caps Capability, pos core.Vec3) error {
	if _, ok := w.entities[id]; ok {
		return fmt.Errorf("%w: %q", ErrEntityExists, id)
	}
	w.entities[id] = &entity{caps: caps, pos: pos}
	w.notify(id)
	return nil
}

// Despawn removes an entity.
func (w *World) Despawn(id focus.EntityID) error {
	if _, ok := w.entities[id]; !ok {
		return fmt.Errorf("%w: %q", ErrEntityUnknown, id)
	}
	delete(w.entities, id)
	w.notify(id)
	return nil
}

// SetCapabilities replaces the capability set of an entity.
func (w *World) SetCapabilities(id focus.EntityID, caps Capability) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEntityUnknown, id)
	}
	e.caps = caps
	w.notify(id)
	return nil
}

// Capabilities returns the capability set of an entity.
func (w *World) Capabilities(id focus.EntityID) (Capability, bool) {
	e, ok := w.entities[id]
	if !ok {
		return 0, false
	}
	return e.caps, true
}

// Move translates an entity by delta.
func (w *World) Move(id focus.EntityID, delta core.Vec3) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEntityUnknown, id)
	}
	e.pos = e.pos.Add(delta)
	return nil
}

// Position implements focus.Locator. Entities without HasPosition have none.
func (w *World) Position(id focus.EntityID) (core.Vec3, bool) {
	e, ok := w.entities[id]
	if !ok || !e.caps.Has(HasPosition) {
		return core.Vec3{}, false
	}
	return e.pos, true
}

// Len returns the number of entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Subscribe creates a subscription for entities carrying every capability in
// want. Entities that already match are reported as added on the first Drain.
func (w *World) Subscribe(want Capability) *Subscription {
	s := &Subscription{
		want:    want,
		members: make(map[focus.EntityID]bool),
	}
	ids := make([]focus.EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s.update(id, w.entities[id])
	}
	w.subs = append(w.subs, s)
	return s
}

func (w *World) notify(id focus.EntityID) {
	e := w.entities[id]
	for _, s := range w.subs {
		s.update(id, e)
	}
}

// Subscription implements focus.Query for one capability set.
type Subscription struct {
	want    Capability
	members map[focus.EntityID]bool
	pending focus.Batch
}

// update records a membership change. An entity that enters and leaves
// within one batch produces no notification at all.
func (s *Subscription) update(id focus.EntityID, e *entity) {
	matches := e != nil && e.caps.Has(s.want)
	switch {
	case matches && !s.members[id]:
		s.members[id] = true
		if !removeID(&s.pending.Removed, id) {
			s.pending.Added = append(s.pending.Added, focus.Entity{ID: id})
		}
	case !matches && s.members[id]:
		delete(s.members, id)
		if !removeID(&s.pending.Added, id) {
			s.pending.Removed = append(s.pending.Removed, focus.Entity{ID: id})
		}
	}
}

// Drain returns and clears the pending notifications.
func (s *Subscription) Drain() focus.Batch {
	b := s.pending
	s.pending = focus.Batch{}
	return b
}

// Members returns the number of entities currently matching.
func (s *Subscription) Members() int {
	return len(s.members)
}

func removeID(list *[]focus.Entity, id focus.EntityID) bool {
	for i, e := range *list {
		if e.ID == id {
			*list = slices.Delete(*list, i, i+1)
			return true
		}
	}
	return false
}
