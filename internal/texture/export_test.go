package texture_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/tui-starfield/internal/texture"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected texture.Format
		wantErr  bool
	}{
		{"png", texture.FormatPNG, false},
		{".PNG", texture.FormatPNG, false},
		{"bmp", texture.FormatBMP, false},
		{"tif", texture.FormatTIFF, false},
		{"tiff", texture.FormatTIFF, false},
		{"jpeg", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := texture.ParseFormat(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseFormat(%q) = %q, expected %q", tc.in, got, tc.expected)
			}
		})
	}
}

func TestEncodePNGScaled(t *testing.T) {
	buf := texture.NewPixelBuffer(4, 3)
	red := texture.Color{R: 255, A: 255}
	buf.Set(1, 2, red)

	var out bytes.Buffer
	if err := texture.Encode(&out, buf, texture.FormatPNG, 2); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("scaled size = %dx%d, expected 8x6", b.Dx(), b.Dy())
	}

	// Nearest-neighbour: the red pixel becomes a 2x2 block.
	for _, p := range [][2]int{{2, 4}, {3, 4}, {2, 5}, {3, 5}} {
		got := color.NRGBAModel.Convert(img.At(p[0], p[1])).(color.NRGBA)
		if got != red.NRGBA() {
			t.Errorf("pixel %v = %+v, expected red", p, got)
		}
	}
	got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if got.A != 0 {
		t.Errorf("untouched pixel should stay transparent, got %+v", got)
	}
}

func TestEncodeBMP(t *testing.T) {
	buf := texture.NewPixelBuffer(5, 5)
	buf.FillCircle(2, 2, 1, texture.White)

	var out bytes.Buffer
	if err := texture.Encode(&out, buf, texture.FormatBMP, 1); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, err := bmp.Decode(&out)
	if err != nil {
		t.Fatalf("bmp.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
		t.Errorf("size = %dx%d, expected 5x5", b.Dx(), b.Dy())
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	if err := texture.Encode(&out, texture.NewPixelBuffer(1, 1), texture.Format("gif"), 1); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := texture.ParseHexColor("#ff8000")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	if c != (texture.Color{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("ParseHexColor = %+v", c)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("Hex() = %q, expected #ff8000", c.Hex())
	}

	if _, err := texture.ParseHexColor("orange"); err == nil {
		t.Error("expected error for non-hex colour")
	}
}
