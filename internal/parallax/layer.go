package parallax

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/texture"
)

// Perspective holds the extents of the field as seen from the camera.
type Perspective struct {
	Divider       float64 // 1 + distance / altitude
	WidthF        float64 // Expanded width before truncation
	HeightF       float64 // Expanded height before truncation
	Width         int
	Height        int
	AreaScale     float64 // Expanded area over base area
	ScaledDensity int     // Density for the expanded area
}

// Geometry is the placement of a layer quad, handed to the renderer as plain numbers.
type Geometry struct {
	Width       float64
	Height      float64
	RotationX   float64   // Radians around the X axis; the quad lies flat
	Translation core.Vec3 // Quad origin, centred under the camera
}

// LayerConfig is everything derived for one layer.
type LayerConfig struct {
	Index         int
	Width         int
	Height        int
	Density       int
	StarSize      int
	ColorInterval int
	SizeInterval  int
	SizeShift     int

	BaseColor      *texture.Color
	StarVisibility float64 // Alpha of random star colours

	// MaterialVisibility fades deeper layers: visibility / index for index > 0.
	MaterialVisibility float64
	ParallaxScale      float64
	Geometry           Geometry
}

// Spec returns the texture spec for this layer.
func (c LayerConfig) Spec() texture.StarFieldSpec {
	return texture.StarFieldSpec{
		Width:               c.Width,
		Height:              c.Height,
		Density:             c.Density,
		BaseColor:           c.BaseColor,
		BaseStarSize:        c.StarSize,
		RandomColorInterval: c.ColorInterval,
		RandomSizeInterval:  c.SizeInterval,
		RandomSizeShift:     c.SizeShift,
		Visibility:          c.StarVisibility,
	}
}

// ComputePerspective expands the base field for a camera at the given altitude.
func ComputePerspective(s Settings, altitude float64) (Perspective, error) {
	if altitude <= 0 || math.IsNaN(altitude) || math.IsInf(altitude, 0) {
		return Perspective{}, fmt.Errorf("%w: got %v", ErrInvalidAltitude, altitude)
	}

	w, h := float64(s.BaseWidth), float64(s.BaseHeight)
	divider := 1 + float64(s.StarFieldDistance)/altitude
	widthF := 2*(w/divider) + w
	heightF := 2*(h/divider) + h
	area := (widthF * heightF) / (w * h)

	return Perspective{
		Divider:       divider,
		WidthF:        widthF,
		HeightF:       heightF,
		Width:         int(widthF),
		Height:        int(heightF),
		AreaScale:     area,
		ScaledDensity: int(math.Round(area * float64(s.Density))),
	}, nil
}

// DeriveLayers computes the configuration of every layer.
// Layer 0 is the deepest: it gets the biggest stars, the largest density
// reduction and the fastest scroll.
func DeriveLayers(s Settings, altitude float64) ([]LayerConfig, Perspective, error) {
	if err := s.Validate(); err != nil {
		return nil, Perspective{}, err
	}
	p, err := ComputePerspective(s, altitude)
	if err != nil {
		return nil, Perspective{}, err
	}

	n := s.LayerCount
	visibility := core.ClampF(s.Visibility, 0, 1)
	layers := make([]LayerConfig, n)
	for i := range n {
		material := visibility
		if i > 0 {
			material = visibility / float64(i)
		}
		layers[i] = LayerConfig{
			Index:              i,
			Width:              p.Width,
			Height:             p.Height,
			Density:            p.ScaledDensity - (p.ScaledDensity/n)*(n-(i+1)),
			StarSize:           core.Max(0, s.LayerBaseStarSize-(s.LayerBaseStarSize/n)*i),
			ColorInterval:      s.ColorInterval * (i + 1),
			SizeInterval:       s.SizeInterval * (i + 1),
			SizeShift:          core.Max(0, s.SizeShift-(s.SizeShift/n)*i),
			BaseColor:          s.BaseColor,
			StarVisibility:     visibility,
			MaterialVisibility: material,
			ParallaxScale:      float64(n-i) * s.LayerBaseSpeed,
			Geometry: Geometry{
				Width:     float64(p.Width),
				Height:    float64(p.Height),
				RotationX: -math.Pi / 2,
				Translation: core.Vec3{
					X: -float64(p.Width) / 2,
					Y: -float64(s.StarFieldDistance),
					Z: float64(p.Height) / 2,
				},
			},
		}
	}
	return layers, p, nil
}
