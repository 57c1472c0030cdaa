// Package presets registers the built-in starfield looks.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/tui-starfield/internal/presets"
package presets

import (
	"github.com/vovakirdan/tui-starfield/internal/config"
	"github.com/vovakirdan/tui-starfield/internal/registry"
)

// Preset is a registry.Preset that patches the default configuration.
type Preset struct {
	id          string
	title       string
	description string
	apply       func(*config.StarFieldConfig)
}

func (p Preset) ID() string          { return p.id }
func (p Preset) Title() string       { return p.title }
func (p Preset) Description() string { return p.description }

// Config returns the default configuration with the preset's changes applied.
func (p Preset) Config() config.StarFieldConfig {
	cfg := config.DefaultStarFieldConfig()
	if p.apply != nil {
		p.apply(&cfg)
	}
	return cfg
}

// Built-in presets.
var (
	Classic = Preset{
		id:          "classic",
		title:       "Classic",
		description: "Three white layers with occasional coloured and resized stars",
	}

	Dense = Preset{
		id:          "dense",
		title:       "Dense",
		description: "Four crowded layers of small stars",
		apply: func(c *config.StarFieldConfig) {
			c.Field.Density = 120
			c.Field.Layers = 4
			c.Field.LayerBaseStarSize = 2
			c.Field.ColorInterval = 8
			c.Field.SizeShift = 2
		},
	}

	Sparse = Preset{
		id:          "sparse",
		title:       "Sparse",
		description: "Two thin layers seen from high above",
		apply: func(c *config.StarFieldConfig) {
			c.Field.Density = 20
			c.Field.Layers = 2
			c.Field.LayerBaseStarSize = 4
			c.Field.Visibility = 0.9
			c.Camera.Altitude = 120
		},
	}

	Nebula = Preset{
		id:          "nebula",
		title:       "Nebula",
		description: "Five layers where every star gets a random colour",
		apply: func(c *config.StarFieldConfig) {
			c.Field.Density = 70
			c.Field.Layers = 5
			c.Field.BaseColor = ""
			c.Field.ColorInterval = 0
			c.Field.Visibility = 0.6
			c.Preview.Background = "#0b0420"
		},
	}
)

// All returns the built-in presets in registration order.
func All() []Preset {
	return []Preset{Classic, Dense, Sparse, Nebula}
}

func init() {
	for _, p := range All() {
		registry.Register(p.id, func() registry.Preset { return p })
	}
}
