package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an image file format supported by Encode.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatBMP:
		return FormatBMP, nil
	case FormatTIFF, "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("texture: unsupported format %q", s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Scale returns the buffer as an image enlarged by an integer factor.
// Nearest-neighbour sampling keeps the stars pixelated.
func Scale(b *PixelBuffer, factor int) image.Image {
	src := b.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Width*factor, b.Height*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Encode writes the buffer to w in the given format.
func Encode(w io.Writer, b *PixelBuffer, format Format, scale int) error {
	img := Scale(b, scale)

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("texture: unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("texture: encode %s: %w", format, err)
	}
	return nil
}
