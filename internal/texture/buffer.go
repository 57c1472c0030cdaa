package texture

import (
	"image"
)

// PixelBuffer is a tightly strided, row-major RGBA image.
// Pixels never written hold transparent black.
type PixelBuffer struct {
	Width  int
	Height int
	Stride int // Bytes per row, always 4*Width
	Pix    []uint8
}

// NewPixelBuffer allocates a fully transparent buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Stride: 4 * width,
		Pix:    make([]uint8, 4*width*height),
	}
}

// Bounds returns the buffer rectangle.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Set writes a pixel. Out-of-bounds coordinates are silently ignored.
func (b *PixelBuffer) Set(x, y int, c Color) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := y*b.Stride + 4*x
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// At returns the pixel at (x, y), transparent black when out of bounds.
func (b *PixelBuffer) At(x, y int) Color {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Color{}
	}
	i := y*b.Stride + 4*x
	return Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// hline fills the inclusive span [x1, x2] on row y.
func (b *PixelBuffer) hline(x1, x2, y int, c Color) {
	for x := x1; x <= x2; x++ {
		b.Set(x, y, c)
	}
}

// vline fills the inclusive span [y1, y2] on column x.
func (b *PixelBuffer) vline(x, y1, y2 int, c Color) {
	for y := y1; y <= y2; y++ {
		b.Set(x, y, c)
	}
}

// IsTransparent reports whether no pixel carries any colour or alpha.
func (b *PixelBuffer) IsTransparent() bool {
	for _, v := range b.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bytes returns a copy of the packed RGBA bytes.
func (b *PixelBuffer) Bytes() []byte {
	out := make([]byte, len(b.Pix))
	copy(out, b.Pix)
	return out
}

// ToImage copies the buffer into an image.NRGBA.
// Alpha is carried independently per pixel, so the non-premultiplied form is used.
func (b *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	copy(img.Pix, b.Pix)
	return img
}
