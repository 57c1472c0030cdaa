// Package parallax derives the depth layers of the starfield and computes
// their per-frame scroll parameters from the focused entity's position.
package parallax

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-starfield/internal/texture"
)

var (
	// ErrInvalidSettings is returned by Configure for out-of-contract values.
	ErrInvalidSettings = errors.New("parallax: invalid settings")

	// ErrInvalidAltitude is returned by Attach when the camera is not above the field.
	ErrInvalidAltitude = errors.New("parallax: camera altitude must be positive")

	// ErrNotConfigured is returned by Attach before Configure succeeded.
	ErrNotConfigured = errors.New("parallax: manager not configured")
)

// Settings is the complete starfield configuration shared by all layers.
// Per-layer values are derived from these at attach time.
type Settings struct {
	BaseWidth         int     // Field width before perspective expansion
	BaseHeight        int     // Field height before perspective expansion
	Density           int     // Star count for a BaseWidth x BaseHeight area
	LayerCount        int     // Number of depth layers
	LayerBaseSpeed    float64 // Scroll speed unit; layer i scrolls at (N-i) units
	LayerBaseStarSize int     // Star radius of layer 0
	StarFieldDistance int     // Distance of the field plane below the origin
	ColorInterval     int     // Base random colour interval (0 = off)
	SizeInterval      int     // Base random size interval (0 = off)
	SizeShift         int     // Base random size shift in pixels
	Visibility        float64 // Alpha multiplier, 0.0 to 1.0

	// BaseColor is the colour of non-randomized stars. Nil gives every star
	// a random colour.
	BaseColor *texture.Color
}

// DefaultSettings returns the classic three-layer field.
func DefaultSettings() Settings {
	white := texture.White
	return Settings{
		BaseWidth:         100,
		BaseHeight:        100,
		Density:           50,
		LayerCount:        3,
		LayerBaseSpeed:    0.01,
		LayerBaseStarSize: 3,
		StarFieldDistance: 600,
		ColorInterval:     5,
		SizeInterval:      5,
		SizeShift:         5,
		Visibility:        0.75,
		BaseColor:         &white,
	}
}

// Validate checks the input contract.
func (s Settings) Validate() error {
	switch {
	case s.BaseWidth <= 0 || s.BaseHeight <= 0:
		return fmt.Errorf("%w: base size %dx%d must be positive", ErrInvalidSettings, s.BaseWidth, s.BaseHeight)
	case s.Density <= 0:
		return fmt.Errorf("%w: density %d must be positive", ErrInvalidSettings, s.Density)
	case s.LayerCount <= 0:
		return fmt.Errorf("%w: layer count %d must be positive", ErrInvalidSettings, s.LayerCount)
	case s.StarFieldDistance < 0:
		return fmt.Errorf("%w: star field distance %d must not be negative", ErrInvalidSettings, s.StarFieldDistance)
	case s.ColorInterval < 0 || s.SizeInterval < 0 || s.SizeShift < 0:
		return fmt.Errorf("%w: intervals and size shift must not be negative", ErrInvalidSettings)
	}
	return nil
}
