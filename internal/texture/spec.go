package texture

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec is returned when a StarFieldSpec violates its input contract.
	ErrInvalidSpec = errors.New("texture: invalid star field spec")

	// ErrNilRandom is returned when Generate is called without a random source.
	ErrNilRandom = errors.New("texture: nil random source")
)

// StarFieldSpec describes one star texture.
type StarFieldSpec struct {
	Width   int // Texture width in pixels (> 0)
	Height  int // Texture height in pixels (> 0)
	Density int // Number of stars attempted (>= 0)

	// BaseColor is the colour of every star that is not randomized.
	// Nil means every star gets its own random colour.
	BaseColor *Color

	BaseStarSize        int     // Star radius in pixels; values <= 0 draw radius 1
	RandomColorInterval int     // Star-index spacing of random colours (0 = off)
	RandomSizeInterval  int     // Star-index spacing of random sizes (0 = off)
	RandomSizeShift     int     // Max absolute radius deviation of a random size
	Visibility          float64 // Alpha multiplier for random colours, 0.0 to 1.0
}

// DefaultStarFieldSpec returns a small white star texture.
func DefaultStarFieldSpec() StarFieldSpec {
	white := White
	return StarFieldSpec{
		Width:        128,
		Height:       128,
		Density:      64,
		BaseColor:    &white,
		BaseStarSize: 1,
		Visibility:   1.0,
	}
}

// Validate checks the input contract of the spec.
func (s StarFieldSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidSpec, s.Width, s.Height)
	}
	if s.Density < 0 {
		return fmt.Errorf("%w: density %d must not be negative", ErrInvalidSpec, s.Density)
	}
	if s.RandomColorInterval < 0 || s.RandomSizeInterval < 0 || s.RandomSizeShift < 0 {
		return fmt.Errorf("%w: randomization intervals and shift must not be negative", ErrInvalidSpec)
	}
	return nil
}
