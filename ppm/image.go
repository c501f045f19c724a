// Package ppm reads and writes binary Portable Pixmap (P6) images.
//
// Only 8-bit images (maxval 255) are supported. Pixels are held in a flat,
// row-major slice so that callers can hand out disjoint row ranges to
// concurrent workers without copying.
package ppm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxPixels limits the number of pixels accepted by NewImage and Decode.
// It guards against absurd header dimensions allocating unbounded memory.
const MaxPixels = 1 << 28

// Image errors
var (
	ErrInvalidDimensions = errors.New("ppm: invalid image dimensions")
	ErrImageTooLarge     = errors.New("ppm: image exceeds maximum pixel count")
	ErrBufferSize        = errors.New("ppm: pixel buffer length does not match dimensions")
)

// Pixel is one RGB triplet with 8 bits per channel.
type Pixel struct {
	R, G, B uint8
}

// Image is a row-major grid of pixels. The pixel at (x, y) is stored at
// Pix[y*Width+x].
type Image struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewImage allocates a zeroed image of the given size.
func NewImage(width, height int) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}
	return nil
}

// Validate reports whether the image dimensions and buffer are consistent.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if err := checkDimensions(img.Width, img.Height); err != nil {
		return err
	}
	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("%w: have %d, want %d", ErrBufferSize, len(img.Pix), img.Width*img.Height)
	}
	return nil
}

// PixelAt returns the pixel at (x, y).
func (img *Image) PixelAt(x, y int) Pixel {
	return img.Pix[y*img.Width+x]
}

// SetPixel stores p at (x, y).
func (img *Image) SetPixel(x, y int, p Pixel) {
	img.Pix[y*img.Width+x] = p
}

// Row returns the pixels of row y. The slice aliases the image buffer.
func (img *Image) Row(y int) []Pixel {
	off := y * img.Width
	return img.Pix[off : off+img.Width : off+img.Width]
}

// Equal reports whether two images have the same size and pixels.
func (img *Image) Equal(other *Image) bool {
	if img.Width != other.Width || img.Height != other.Height || len(img.Pix) != len(other.Pix) {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ToRGBA converts the image to an opaque *image.RGBA.
func (img *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i, p := range img.Pix {
		o := i * 4
		dst.Pix[o] = p.R
		dst.Pix[o+1] = p.G
		dst.Pix[o+2] = p.B
		dst.Pix[o+3] = 0xff
	}
	return dst
}

// FromImage converts any image.Image to an Image. Alpha is discarded.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	img, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x := range row {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			row[x] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}
	return img, nil
}
