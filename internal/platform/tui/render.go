package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/parallax"
	"github.com/vovakirdan/tui-starfield/internal/texture"
)

// halfBlock paints the upper pixel with the foreground colour and the lower
// pixel with the background colour, giving two pixels per terminal cell.
const halfBlock = "▀"

// Compose blends the layers into an opaque width x height frame.
// Layers are drawn deepest (highest index) first. Each texture repeats, and is
// sampled at pixel + ScrollOffset * ParallaxScale * textureSize.
func Compose(layers []parallax.Layer, width, height int, background texture.Color) *texture.PixelBuffer {
	width = core.Max(width, 0)
	height = core.Max(height, 0)
	frame := texture.NewPixelBuffer(width, height)

	background.A = 255
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			frame.Set(x, y, background)
		}
	}

	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		tex := l.Texture
		vis := l.Config.MaterialVisibility
		if tex == nil || tex.Width == 0 || tex.Height == 0 || vis <= 0 {
			continue
		}

		shiftX := int(math.Floor(l.ScrollOffset.X * l.ParallaxScale * float64(tex.Width)))
		shiftY := int(math.Floor(l.ScrollOffset.Y * l.ParallaxScale * float64(tex.Height)))

		for y := 0; y < height; y++ {
			ty := core.Mod(y+shiftY, tex.Height)
			for x := 0; x < width; x++ {
				src := tex.At(core.Mod(x+shiftX, tex.Width), ty)
				if src.A == 0 {
					continue
				}
				alpha := math.Min(float64(src.A)/255*vis, 1)
				frame.Set(x, y, blend(frame.At(x, y), src, alpha))
			}
		}
	}

	return frame
}

// blend mixes src over an opaque dst with the given coverage.
func blend(dst, src texture.Color, alpha float64) texture.Color {
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-alpha) + float64(s)*alpha))
	}
	return texture.Color{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 255,
	}
}

// RenderFrame converts a frame to half-block rows, one text line per two
// pixel rows. Adjacent cells with the same colours share one styled run to
// minimize ANSI escape sequences. A nil renderer uses the default one.
func RenderFrame(r *lipgloss.Renderer, frame *texture.PixelBuffer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(frame.Width*frame.Height*2 + frame.Height)

	for y := 0; y < frame.Height; y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colours
		x := 0
		for x < frame.Width {
			top, bottom := frame.At(x, y), frame.At(x, y+1)
			start := x
			for x < frame.Width && frame.At(x, y) == top && frame.At(x, y+1) == bottom {
				x++
			}

			style := r.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex()))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, x-start)))
		}
	}
	return sb.String()
}

// drawShip plots a small plus-shaped marker centred in the frame.
func drawShip(frame *texture.PixelBuffer, c texture.Color) {
	cx, cy := frame.Width/2, frame.Height/2
	frame.Set(cx, cy, c)
	frame.Set(cx-1, cy, c)
	frame.Set(cx+1, cy, c)
	frame.Set(cx, cy-1, c)
	frame.Set(cx, cy+1, c)
}
