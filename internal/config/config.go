// Package config provides YAML-based starfield configuration loading with
// environment overrides.
package config

import (
	"github.com/vovakirdan/tui-starfield/internal/parallax"
	"github.com/vovakirdan/tui-starfield/internal/texture"
)

// StarFieldConfig contains the full configuration of a starfield run.
type StarFieldConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Camera  CameraConfig  `yaml:"camera"`
	Preview PreviewConfig `yaml:"preview"`
	Export  ExportConfig  `yaml:"export"`
}

// FieldConfig defines the layered field. Names follow parallax.Settings.
type FieldConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	Density           int     `yaml:"density"`
	Layers            int     `yaml:"layers"`
	LayerBaseSpeed    float64 `yaml:"layer_base_speed"`
	LayerBaseStarSize int     `yaml:"layer_base_star_size"`
	Distance          int     `yaml:"distance"`
	ColorInterval     int     `yaml:"color_interval"`
	SizeInterval      int     `yaml:"size_interval"`
	SizeShift         int     `yaml:"size_shift"`
	Visibility        float64 `yaml:"visibility"`
	BaseColor         string  `yaml:"base_color"` // "#rrggbb"; empty = every star random
}

// CameraConfig places the observer above the field.
type CameraConfig struct {
	Altitude float64 `yaml:"altitude"`
}

// PreviewConfig tunes the terminal preview.
type PreviewConfig struct {
	TickRate   int     `yaml:"tick_rate"`
	ShipSpeed  float64 `yaml:"ship_speed"` // World units per tick while a key is held
	Background string  `yaml:"background"` // "#rrggbb"
}

// ExportConfig controls texture files written by `starfield generate`.
type ExportConfig struct {
	Format string `yaml:"format"` // png, bmp or tiff
	Scale  int    `yaml:"scale"`  // Integer nearest-neighbour upscale
	Dir    string `yaml:"dir"`
}

// ToSettings converts the field section into layer manager settings.
func (c StarFieldConfig) ToSettings() (parallax.Settings, error) {
	f := c.Field
	s := parallax.Settings{
		BaseWidth:         f.Width,
		BaseHeight:        f.Height,
		Density:           f.Density,
		LayerCount:        f.Layers,
		LayerBaseSpeed:    f.LayerBaseSpeed,
		LayerBaseStarSize: f.LayerBaseStarSize,
		StarFieldDistance: f.Distance,
		ColorInterval:     f.ColorInterval,
		SizeInterval:      f.SizeInterval,
		SizeShift:         f.SizeShift,
		Visibility:        f.Visibility,
	}
	if f.BaseColor != "" {
		col, err := texture.ParseHexColor(f.BaseColor)
		if err != nil {
			return parallax.Settings{}, err
		}
		s.BaseColor = &col
	}
	return s, s.Validate()
}

// BackgroundColor returns the preview background, falling back to near-black.
func (c StarFieldConfig) BackgroundColor() texture.Color {
	if c.Preview.Background != "" {
		if bg, err := texture.ParseHexColor(c.Preview.Background); err == nil {
			return bg
		}
	}
	return texture.Color{R: 3, G: 5, B: 16, A: 255}
}
