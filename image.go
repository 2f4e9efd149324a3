package vtracer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ColorImage is a tightly packed RGBA raster, four bytes per pixel, row major.
type ColorImage struct {
	Pixels []byte
	Width  int
	Height int
}

// NewColorImage wraps pixels after checking that the length matches the
// dimensions. The slice is used as is, not copied.
func NewColorImage(pixels []byte, width, height int) (ColorImage, error) {
	img := ColorImage{Pixels: pixels, Width: width, Height: height}
	if err := img.validate(); err != nil {
		return ColorImage{}, err
	}
	return img, nil
}

func (img ColorImage) validate() error {
	if img.Width < 0 || img.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if img.Height > 0 && img.Width > len(img.Pixels)/4/img.Height {
		return fmt.Errorf("%w: %dx%d needs more than %d bytes", ErrInvalidImage, img.Width, img.Height, len(img.Pixels))
	}
	if want := img.Width * img.Height * 4; len(img.Pixels) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrInvalidImage, len(img.Pixels), want, img.Width, img.Height)
	}
	return nil
}

// RGBAAt returns the pixel at (x, y). Coordinates must be in range.
func (img ColorImage) RGBAAt(x, y int) color.RGBA {
	i := (y*img.Width + x) * 4
	p := img.Pixels[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// FromImage copies any image.Image into a ColorImage. The result is
// non-premultiplied RGBA with the origin moved to (0, 0).
func FromImage(src image.Image) ColorImage {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return ColorImage{Pixels: dst.Pix, Width: b.Dx(), Height: b.Dy()}
}

// SolidColorImage returns a width x height image filled with c.
func SolidColorImage(width, height int, c color.Color) ColorImage {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = n.R
		pixels[i+1] = n.G
		pixels[i+2] = n.B
		pixels[i+3] = n.A
	}
	return ColorImage{Pixels: pixels, Width: width, Height: height}
}
