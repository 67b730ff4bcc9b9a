package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodeTestPNG builds a PNG of the given size filled with one color.
func encodeTestPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

// encodeTestTGA builds an uncompressed 24-bit TGA filled with one color.
func encodeTestTGA(w, h int, r, g, b uint8) []byte {
	header := make([]byte, 18)
	header[2] = 2 // uncompressed true-color
	header[12] = byte(w)
	header[13] = byte(w >> 8)
	header[14] = byte(h)
	header[15] = byte(h >> 8)
	header[16] = 24

	data := header
	for i := 0; i < w*h; i++ {
		data = append(data, b, g, r)
	}
	return data
}

func TestDecodePNG(t *testing.T) {
	data := encodeTestPNG(t, 8, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	tex, err := Decode("frame01.png", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tex.Width() != 8 || tex.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", tex.Width(), tex.Height())
	}
	if got := tex.Image.RGBAAt(3, 2); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeTGAByExtension(t *testing.T) {
	data := encodeTestTGA(4, 4, 200, 100, 50)

	tex, err := Decode("checker.TGA", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := tex.Image.RGBAAt(1, 1); got != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeTGA_RejectsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			d := encodeTestTGA(2, 2, 0, 0, 0)
			d[1] = 1
			return d
		}()},
		{"grayscale type", func() []byte {
			d := encodeTestTGA(2, 2, 0, 0, 0)
			d[2] = 3
			return d
		}()},
		{"16bpp", func() []byte {
			d := encodeTestTGA(2, 2, 0, 0, 0)
			d[16] = 16
			return d
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeDownscalesOversized(t *testing.T) {
	data := encodeTestPNG(t, MaxDimension*2, MaxDimension/2, color.RGBA{A: 255})

	tex, err := Decode("huge.png", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tex.Width() != MaxDimension {
		t.Errorf("width = %d, want %d", tex.Width(), MaxDimension)
	}
	// Aspect ratio preserved: 4:1 input stays 4:1.
	if tex.Height() != MaxDimension/4 {
		t.Errorf("height = %d, want %d", tex.Height(), MaxDimension/4)
	}
}

func TestChecker(t *testing.T) {
	tex := Checker(8, 4)

	if tex.Width() != 8 || tex.Height() != 8 {
		t.Fatalf("size = %dx%d, want 8x8", tex.Width(), tex.Height())
	}
	// Top-left cell is light, the cell to its right is dark.
	topLeft := tex.Image.RGBAAt(0, 0)
	right := tex.Image.RGBAAt(4, 0)
	if topLeft == right {
		t.Error("adjacent checker cells have the same color")
	}
	// Diagonal cell matches the first.
	diag := tex.Image.RGBAAt(4, 4)
	if topLeft != diag {
		t.Error("diagonal checker cells should match")
	}
}
