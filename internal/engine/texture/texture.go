// Package texture provides image decoding and texture processing for the
// material pipeline. PNG and JPEG come from the standard image registry,
// TGA from the decoder in this package.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Texture is a decoded image ready for material use. GPU upload happens in
// the renderer; this type stays CPU-side so tests never need a GL context.
type Texture struct {
	Name  string
	Image *image.RGBA
}

// Width returns the pixel width.
func (t *Texture) Width() int { return t.Image.Bounds().Dx() }

// Height returns the pixel height.
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }

// MaxDimension is the largest texture edge kept in memory. Larger images
// are downscaled on decode; phone camera frames and marker scans can be
// arbitrarily big.
const MaxDimension = 2048

// Decode decodes image data into a Texture. The format is chosen by the
// file extension of name: .tga uses the local decoder, anything else goes
// through the standard image registry.
func Decode(name string, data []byte) (*Texture, error) {
	var img image.Image
	var err error

	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	rgba := toRGBA(img)
	if rgba.Bounds().Dx() > MaxDimension || rgba.Bounds().Dy() > MaxDimension {
		rgba = downscale(rgba, MaxDimension)
	}

	return &Texture{Name: name, Image: rgba}, nil
}

// Checker builds a procedural checker-pattern texture: size x size pixels,
// cells pixels per square, alternating white and dark gray.
func Checker(size, cells int) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.RGBA{R: 40, G: 40, B: 40, A: 255}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if ((x/cells)+(y/cells))%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}

	return &Texture{Name: "checker", Image: img}
}

// toRGBA converts any image.Image to *image.RGBA without copying when the
// input already has the right type.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	xdraw.Draw(rgba, bounds, img, bounds.Min, xdraw.Src)
	return rgba
}

// downscale shrinks img so its longest edge equals limit, preserving
// aspect ratio.
func downscale(img *image.RGBA, limit int) *image.RGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	scale := float64(limit) / float64(w)
	if h > w {
		scale = float64(limit) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
