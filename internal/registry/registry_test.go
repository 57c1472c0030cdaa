package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-starfield/internal/config"
)

type stubPreset struct {
	id       string
	altitude float64
}

func (p stubPreset) ID() string          { return p.id }
func (p stubPreset) Title() string       { return "Stub " + p.id }
func (p stubPreset) Description() string { return "test preset" }
func (p stubPreset) Config() config.StarFieldConfig {
	cfg := config.DefaultStarFieldConfig()
	cfg.Camera.Altitude = p.altitude
	return cfg
}

func TestRegisterCreateList(t *testing.T) {
	Register("zz-test-b", func() Preset { return stubPreset{id: "zz-test-b", altitude: 5} })
	Register("zz-test-a", func() Preset { return stubPreset{id: "zz-test-a", altitude: 3} })

	if !Exists("zz-test-a") || !Exists("zz-test-b") {
		t.Fatal("registered presets should exist")
	}
	if Exists("zz-test-missing") {
		t.Error("unregistered preset reported as existing")
	}

	p, err := Create("zz-test-b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Config().Camera.Altitude != 5 {
		t.Errorf("Altitude = %v, want 5", p.Config().Camera.Altitude)
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	var found bool
	for _, info := range list {
		if info.ID == "zz-test-a" {
			found = true
			if info.Title != "Stub zz-test-a" || info.Description != "test preset" {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("zz-test-a missing from List")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("zz-test-unknown")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-test-dup", func() Preset { return stubPreset{id: "zz-test-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz-test-dup", func() Preset { return stubPreset{id: "zz-test-dup"} })
}
