package config

import (
	_ "embed"
)

//go:embed defaults/starfield.yaml
var defaultStarFieldYAML []byte

// DefaultStarFieldConfig returns the default configuration.
func DefaultStarFieldConfig() StarFieldConfig {
	return StarFieldConfig{
		Field: FieldConfig{
			Width:             100,
			Height:            100,
			Density:           50,
			Layers:            3,
			LayerBaseSpeed:    0.01,
			LayerBaseStarSize: 3,
			Distance:          600,
			ColorInterval:     5,
			SizeInterval:      5,
			SizeShift:         5,
			Visibility:        0.75,
			BaseColor:         "#ffffff",
		},
		Camera: CameraConfig{
			Altitude: 60,
		},
		Preview: PreviewConfig{
			TickRate:   30,
			ShipSpeed:  1.5,
			Background: "#030510",
		},
		Export: ExportConfig{
			Format: "png",
			Scale:  1,
			Dir:    ".",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultStarFieldYAML
}
