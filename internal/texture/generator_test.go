package texture

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-starfield/internal/core"
)

// scriptedRNG replays a fixed list of draws, then keeps returning 0.
type scriptedRNG struct {
	values []int
	pos    int
}

func (s *scriptedRNG) Intn(n int) int {
	if n <= 0 || s.pos >= len(s.values) {
		return 0
	}
	v := s.values[s.pos] % n
	s.pos++
	return v
}

func countOpaque(b *PixelBuffer) int {
	n := 0
	for y := range b.Height {
		for x := range b.Width {
			if b.At(x, y) != (Color{}) {
				n++
			}
		}
	}
	return n
}

func TestGenerateZeroDensityIsTransparent(t *testing.T) {
	spec := DefaultStarFieldSpec()
	spec.Density = 0
	spec.RandomColorInterval = 3
	spec.RandomSizeInterval = 3
	spec.RandomSizeShift = 2

	a, err := Generate(spec, core.NewRNG(1))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(spec, core.NewRNG(2))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !a.IsTransparent() {
		t.Error("density 0 should produce a fully transparent buffer")
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two density 0 buffers should be byte-identical")
	}
	if len(a.Pix) != spec.Width*spec.Height*4 {
		t.Errorf("len(Pix) = %d, expected %d", len(a.Pix), spec.Width*spec.Height*4)
	}
}

func TestGenerateRejectsInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*StarFieldSpec)
	}{
		{"zero width", func(s *StarFieldSpec) { s.Width = 0 }},
		{"negative height", func(s *StarFieldSpec) { s.Height = -4 }},
		{"negative density", func(s *StarFieldSpec) { s.Density = -1 }},
		{"negative color interval", func(s *StarFieldSpec) { s.RandomColorInterval = -1 }},
		{"negative size shift", func(s *StarFieldSpec) { s.RandomSizeShift = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultStarFieldSpec()
			tc.mod(&spec)

			buf, err := Generate(spec, core.NewRNG(1))
			if !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("expected ErrInvalidSpec, got %v", err)
			}
			if buf != nil {
				t.Error("no buffer should be returned for an invalid spec")
			}
		})
	}
}

func TestGenerateNilRandom(t *testing.T) {
	if _, err := Generate(DefaultStarFieldSpec(), nil); !errors.Is(err, ErrNilRandom) {
		t.Errorf("expected ErrNilRandom, got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	spec := DefaultStarFieldSpec()
	spec.BaseColor = nil
	spec.RandomSizeInterval = 4
	spec.RandomSizeShift = 2
	spec.BaseStarSize = 2

	a, _ := Generate(spec, core.NewRNG(1234))
	b, _ := Generate(spec, core.NewRNG(1234))

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed should produce identical textures")
	}
	if a.IsTransparent() {
		t.Error("expected at least one star to be drawn")
	}
}

func TestGenerateRejectsStarsCrossingEdge(t *testing.T) {
	white := White
	spec := StarFieldSpec{
		Width:        7,
		Height:       7,
		Density:      1,
		BaseColor:    &white,
		BaseStarSize: 3,
	}

	// Center (1, 1) with radius 3 crosses the top-left edge.
	buf, err := Generate(spec, &scriptedRNG{values: []int{1, 1}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !buf.IsTransparent() {
		t.Error("star crossing the edge should be skipped entirely")
	}

	// Center (3, 3) with radius 3 touches every edge but stays inside.
	buf, err = Generate(spec, &scriptedRNG{values: []int{3, 3}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, p := range [][2]int{{0, 3}, {6, 3}, {3, 0}, {3, 6}, {3, 3}} {
		if buf.At(p[0], p[1]) != white {
			t.Errorf("pixel %v should be drawn", p)
		}
	}
	if buf.At(0, 0) != (Color{}) {
		t.Error("corner pixel should stay transparent")
	}
}

// recordingRNG wraps a source and keeps every draw.
type recordingRNG struct {
	src   core.RandomSource
	draws []int
}

func (r *recordingRNG) Intn(n int) int {
	v := r.src.Intn(n)
	r.draws = append(r.draws, v)
	return v
}

func TestGenerateStarsStayInsideBuffer(t *testing.T) {
	const radius = 3
	white := White
	spec := StarFieldSpec{
		Width:        40,
		Height:       30,
		Density:      300,
		BaseColor:    &white,
		BaseStarSize: radius,
	}

	rec := &recordingRNG{src: core.NewRNG(99)}
	buf, err := Generate(spec, rec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Without randomization every star consumes exactly two draws (x, y).
	if len(rec.draws) != 2*spec.Density {
		t.Fatalf("expected %d draws, got %d", 2*spec.Density, len(rec.draws))
	}

	bounds := core.NewRect(0, 0, spec.Width, spec.Height)
	expected := NewPixelBuffer(spec.Width, spec.Height)
	accepted := 0
	for i := 0; i < len(rec.draws); i += 2 {
		x, y := rec.draws[i], rec.draws[i+1]
		if !bounds.ContainsRect(core.Square(x, y, radius)) {
			continue
		}
		accepted++
		expected.FillCircle(x, y, radius, white)
	}

	if accepted == 0 {
		t.Fatal("expected some stars to fit inside the buffer")
	}
	if !bytes.Equal(buf.Pix, expected.Pix) {
		t.Error("texture should contain exactly the disks that fit inside the buffer")
	}
}

func TestGenerateBaseColorWithoutRandomization(t *testing.T) {
	base := Color{R: 200, G: 180, B: 90, A: 255}
	spec := StarFieldSpec{
		Width:        64,
		Height:       64,
		Density:      200,
		BaseColor:    &base,
		BaseStarSize: 2,
		Visibility:   1,
	}

	buf, err := Generate(spec, core.NewRNG(5))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for y := range buf.Height {
		for x := range buf.Width {
			if c := buf.At(x, y); c != (Color{}) && c != base {
				t.Fatalf("pixel (%d, %d) = %+v, expected base colour", x, y, c)
			}
		}
	}
}

func TestGenerateRandomColorAlpha(t *testing.T) {
	spec := StarFieldSpec{
		Width:        64,
		Height:       64,
		Density:      100,
		BaseStarSize: 1,
		Visibility:   0.5,
	}

	buf, err := Generate(spec, core.NewRNG(11))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	drawn := 0
	for y := range buf.Height {
		for x := range buf.Width {
			c := buf.At(x, y)
			if c == (Color{}) {
				continue
			}
			drawn++
			if c.A != 127 {
				t.Fatalf("pixel (%d, %d) alpha = %d, expected 127", x, y, c.A)
			}
		}
	}
	if drawn == 0 {
		t.Error("expected random coloured stars")
	}
}

func TestGenerateZeroSizeDrawsRadiusOne(t *testing.T) {
	white := White
	spec := StarFieldSpec{
		Width:        11,
		Height:       11,
		Density:      1,
		BaseColor:    &white,
		BaseStarSize: 0,
	}

	buf, err := Generate(spec, &scriptedRNG{values: []int{5, 5}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if n := countOpaque(buf); n != 5 {
		t.Errorf("radius 1 star should cover 5 pixels, got %d", n)
	}
}

func TestStarRadiusWithoutRandomization(t *testing.T) {
	tests := []struct {
		base, expected int
	}{
		{3, 3},
		{1, 1},
		{0, 1},
		{-2, 1},
	}

	for _, tc := range tests {
		g := &generator{spec: StarFieldSpec{BaseStarSize: tc.base}, rng: core.NewRNG(1)}
		for i := range 20 {
			if r := g.starRadius(i); r != tc.expected {
				t.Fatalf("base %d: starRadius(%d) = %d, expected %d", tc.base, i, r, tc.expected)
			}
		}
	}
}

func TestStarRadiusRandomizedNeverBelowOne(t *testing.T) {
	g := &generator{
		spec: StarFieldSpec{BaseStarSize: 1, RandomSizeShift: 10},
		rng:  core.NewRNG(3),
		size: schedule{interval: 1},
	}

	for i := range 500 {
		r := g.starRadius(i)
		if r < 1 || r > 11 {
			t.Fatalf("starRadius(%d) = %d, expected within [1, 11]", i, r)
		}
	}
}

func TestScheduleBoundaries(t *testing.T) {
	off := schedule{}
	for i := range 10 {
		if off.due(i) {
			t.Fatalf("interval 0 should never be due (index %d)", i)
		}
	}

	s := schedule{interval: 5}
	if !s.due(0) {
		t.Fatal("first star should reach the initial boundary")
	}
	s.advance(0, &scriptedRNG{values: []int{3}})
	for i := 1; i < 3; i++ {
		if s.due(i) {
			t.Errorf("index %d should not be due before boundary 3", i)
		}
	}
	if !s.due(3) {
		t.Error("index 3 should be due")
	}
}

func TestFillCircleSmallRadii(t *testing.T) {
	tests := []struct {
		radius   int
		expected int
	}{
		{1, 5},  // plus sign
		{2, 21}, // 5x5 without corners
	}

	for _, tc := range tests {
		buf := NewPixelBuffer(9, 9)
		buf.FillCircle(4, 4, tc.radius, White)
		if n := countOpaque(buf); n != tc.expected {
			t.Errorf("radius %d covers %d pixels, expected %d", tc.radius, n, tc.expected)
		}
	}
}

func TestFillCircleIsSolid(t *testing.T) {
	const r = 9
	buf := NewPixelBuffer(2*r+1, 2*r+1)
	buf.FillCircle(r, r, r, White)

	for y := range buf.Height {
		for x := range buf.Width {
			dx, dy := x-r, y-r
			d2 := dx*dx + dy*dy
			drawn := buf.At(x, y) == White
			if d2 <= (r-1)*(r-1) && !drawn {
				t.Errorf("interior pixel (%d, %d) is missing", x, y)
			}
			if d2 > (r+1)*(r+1) && drawn {
				t.Errorf("pixel (%d, %d) lies outside the disk", x, y)
			}
			// The disk is symmetric on both axes.
			if drawn != (buf.At(2*r-x, y) == White) || drawn != (buf.At(x, 2*r-y) == White) {
				t.Errorf("disk is not symmetric at (%d, %d)", x, y)
			}
		}
	}
}

func TestOverlappingStarsLastWriterWins(t *testing.T) {
	buf := NewPixelBuffer(9, 9)
	red := Color{R: 255, A: 255}
	blue := Color{B: 255, A: 255}

	buf.FillCircle(4, 4, 2, red)
	buf.FillCircle(5, 4, 1, blue)

	if buf.At(5, 4) != blue || buf.At(6, 4) != blue {
		t.Error("second star should overwrite overlapping pixels")
	}
	if buf.At(2, 4) != red {
		t.Error("non-overlapping pixels keep the first colour")
	}
}
