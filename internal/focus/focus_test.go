package focus

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-starfield/internal/core"
)

type mapLocator map[EntityID]core.Vec3

func (m mapLocator) Position(id EntityID) (core.Vec3, bool) {
	p, ok := m[id]
	return p, ok
}

func TestTrackerAddThenRemove(t *testing.T) {
	tr := NewTracker()
	ship := Entity{ID: "ship"}

	if err := tr.Apply(Batch{Added: []Entity{ship}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if e, ok := tr.Focused(); !ok || e != ship {
		t.Fatalf("Focused() = %v, %v; expected ship", e, ok)
	}

	if err := tr.Apply(Batch{Removed: []Entity{ship}}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok := tr.Focused(); ok {
		t.Error("tracker should be empty after removing the focused entity")
	}
}

func TestTrackerConsistencyViolations(t *testing.T) {
	ship := Entity{ID: "ship"}
	other := Entity{ID: "other"}

	tests := []struct {
		name  string
		setup []Batch
		batch Batch
	}{
		{
			name:  "remove different identity",
			setup: []Batch{{Added: []Entity{ship}}},
			batch: Batch{Removed: []Entity{other}},
		},
		{
			name:  "add while tracking",
			setup: []Batch{{Added: []Entity{ship}}},
			batch: Batch{Added: []Entity{other}},
		},
		{
			name:  "remove while empty",
			batch: Batch{Removed: []Entity{ship}},
		},
		{
			name:  "two adds in one batch",
			batch: Batch{Added: []Entity{ship, other}},
		},
		{
			name:  "two removes in one batch",
			setup: []Batch{{Added: []Entity{ship}}},
			batch: Batch{Removed: []Entity{ship, other}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker()
			for _, b := range tc.setup {
				if err := tr.Apply(b); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			}
			if err := tr.Apply(tc.batch); !errors.Is(err, ErrFocusConsistency) {
				t.Errorf("expected ErrFocusConsistency, got %v", err)
			}
		})
	}
}

func TestTrackerSwapInOneBatch(t *testing.T) {
	tr := NewTracker()
	ship := Entity{ID: "ship"}
	next := Entity{ID: "next"}

	if err := tr.Apply(Batch{Added: []Entity{ship}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// Removals are applied before additions.
	if err := tr.Apply(Batch{Added: []Entity{next}, Removed: []Entity{ship}}); err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if e, _ := tr.Focused(); e != next {
		t.Errorf("Focused() = %v, expected next", e)
	}
}

func TestTrackerLocate(t *testing.T) {
	tr := NewTracker()
	loc := mapLocator{"ship": {X: 3, Y: 1, Z: -4}}

	if _, ok := tr.Locate(loc); ok {
		t.Error("Locate should fail while nothing has focus")
	}

	if err := tr.Apply(Batch{Added: []Entity{{ID: "ship"}}}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	pos, ok := tr.Locate(loc)
	if !ok || pos != (core.Vec3{X: 3, Y: 1, Z: -4}) {
		t.Errorf("Locate() = %v, %v", pos, ok)
	}
	if cached, ok := tr.Position(); !ok || cached != pos {
		t.Errorf("Position() = %v, %v; expected cached %v", cached, ok, pos)
	}

	delete(loc, "ship")
	if _, ok := tr.Locate(loc); ok {
		t.Error("Locate should fail when the locator lost the entity")
	}
	if cached, _ := tr.Position(); cached != pos {
		t.Error("cached position should survive a failed lookup")
	}
}

func TestBatchEmpty(t *testing.T) {
	if !(Batch{}).Empty() {
		t.Error("zero batch should be empty")
	}
	if (Batch{Added: []Entity{{ID: "a"}}}).Empty() {
		t.Error("batch with an add should not be empty")
	}
}
