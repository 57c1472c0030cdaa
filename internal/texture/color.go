package texture

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA pixel value.
// The zero value is transparent black, the colour of untouched pixels.
type Color struct {
	R, G, B, A uint8
}

// White is the default star colour.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// NRGBA converts to the standard library colour type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns the colour as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("texture: invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 255}, nil
}
