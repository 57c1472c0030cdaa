// Package texture synthesizes pixelated star textures, one per parallax layer.
package texture

import (
	"github.com/vovakirdan/tui-starfield/internal/core"
)

// schedule decides which star indices get a randomized attribute.
// It is local to one Generate call.
type schedule struct {
	interval int
	next     int
}

// due reports whether the star at index has reached the next boundary.
func (s *schedule) due(index int) bool {
	return s.interval > 0 && index >= s.next
}

// advance moves the boundary forward from index by a draw in [0, interval).
func (s *schedule) advance(index int, rng core.RandomSource) {
	s.next = index + rng.Intn(s.interval)
}

// generator holds the per-call state of one texture synthesis.
type generator struct {
	spec  StarFieldSpec
	rng   core.RandomSource
	buf   *PixelBuffer
	color schedule
	size  schedule
}

// Generate creates a star texture for the given spec.
// The output is fully determined by spec and the state of rng.
func Generate(spec StarFieldSpec, rng core.RandomSource) (*PixelBuffer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRandom
	}
	spec.Visibility = core.ClampF(spec.Visibility, 0, 1)

	g := &generator{
		spec:  spec,
		rng:   rng,
		buf:   NewPixelBuffer(spec.Width, spec.Height),
		color: schedule{interval: spec.RandomColorInterval},
		size:  schedule{interval: spec.RandomSizeInterval},
	}

	for star := range spec.Density {
		x := rng.Intn(spec.Width)
		y := rng.Intn(spec.Height)
		g.placeStar(star, x, y)
	}

	return g.buf, nil
}

// placeStar draws one star unless its disk would cross the buffer edge.
func (g *generator) placeStar(index, x, y int) {
	c := g.starColor(index)
	radius := g.starRadius(index)

	bounds := core.NewRect(0, 0, g.buf.Width, g.buf.Height)
	if !bounds.ContainsRect(core.Square(x, y, radius)) {
		return
	}
	g.buf.FillCircle(x, y, radius, c)
}

func (g *generator) starColor(index int) Color {
	if g.spec.BaseColor != nil && !g.color.due(index) {
		return *g.spec.BaseColor
	}
	c := g.randomColor()
	if g.color.interval > 0 {
		g.color.advance(index, g.rng)
	}
	return c
}

func (g *generator) randomColor() Color {
	return Color{
		R: uint8(g.rng.Intn(256)),
		G: uint8(g.rng.Intn(256)),
		B: uint8(g.rng.Intn(256)),
		A: uint8(255 * g.spec.Visibility),
	}
}

// starRadius never returns less than 1: a star is always drawn.
func (g *generator) starRadius(index int) int {
	radius := g.spec.BaseStarSize
	if g.size.due(index) {
		shift := 0
		if s := g.spec.RandomSizeShift; s > 0 {
			shift = g.rng.Intn(2*s+1) - s
		}
		radius += shift
		g.size.advance(index, g.rng)
	}
	return core.Max(radius, 1)
}

// FillCircle draws a solid disk with the midpoint circle algorithm.
// Every octant step fills the horizontal and vertical spans between its
// symmetric points, so the result has no holes.
func (b *PixelBuffer) FillCircle(x0, y0, radius int, c Color) {
	f := 1 - radius
	ddFx := 1
	ddFy := -2 * radius
	x := 0
	y := radius

	b.Set(x0, y0+radius, c)
	b.Set(x0, y0-radius, c)
	b.Set(x0+radius, y0, c)
	b.Set(x0-radius, y0, c)

	b.hline(x0-radius, x0+radius, y0, c)
	b.vline(x0, y0-radius, y0+radius, c)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		b.hline(x0-y, x0+y, y0+x, c)
		b.hline(x0-y, x0+y, y0-x, c)
		b.vline(x0-x, y0-y, y0+y, c)
		b.vline(x0+x, y0-y, y0+y, c)
	}
}
