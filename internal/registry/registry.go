// Package registry provides a global registry for starfield presets.
// Presets register themselves in init() functions, allowing the CLI and the
// preview to discover them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-starfield/internal/config"
)

// ErrUnknownPreset is returned by Create for an unregistered ID.
var ErrUnknownPreset = errors.New("registry: unknown preset")

// Preset is a named starfield configuration.
type Preset interface {
	// ID returns a unique identifier (e.g., "classic", "nebula").
	// Used for CLI flags and catalog records.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description summarises the look of the field.
	Description() string

	// Config returns a fresh configuration. Callers may mutate it.
	Config() config.StarFieldConfig
}

// PresetInfo contains metadata about a registered preset.
type PresetInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a preset.
type Factory func() Preset

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PresetInfo)
	mu        sync.RWMutex
)

// Register adds a preset factory to the registry.
// Typically called from an init() function.
// Panics if a preset with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	p := f()
	infos[id] = PresetInfo{
		ID:          id,
		Title:       p.Title(),
		Description: p.Description(),
	}
}

// List returns information about all registered presets, sorted by ID.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a preset by its ID.
func Create(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, id)
	}

	return f(), nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
