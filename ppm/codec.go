package ppm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Decode reads a P6 image from r.
func Decode(r io.Reader) (*Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	raster := make([]byte, h.PixelBytes())
	if n, err := io.ReadFull(br, raster); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: read %d of %d raster bytes", ErrTruncated, n, len(raster))
		}
		return nil, fmt.Errorf("ppm: reading raster: %w", err)
	}
	return fromRaster(h, raster), nil
}

// DecodeBytes decodes a P6 image held entirely in memory. Trailing bytes
// after the raster are ignored.
func DecodeBytes(data []byte) (*Image, error) {
	br := bytes.NewReader(data)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	raster := data[h.Size:]
	if len(raster) < h.PixelBytes() {
		return nil, fmt.Errorf("%w: read %d of %d raster bytes", ErrTruncated, len(raster), h.PixelBytes())
	}
	return fromRaster(h, raster), nil
}

// fromRaster copies packed RGB bytes into a new Image. The raster is not
// retained, so it may point into a memory-mapped file.
func fromRaster(h Header, raster []byte) *Image {
	img := &Image{
		Width:  h.Width,
		Height: h.Height,
		Pix:    make([]Pixel, h.Width*h.Height),
	}
	for i := range img.Pix {
		o := i * 3
		img.Pix[i] = Pixel{R: raster[o], G: raster[o+1], B: raster[o+2]}
	}
	return img
}

// Encode writes img to w as P6 with the header "P6\n<w> <h>\n255\n".
func Encode(w io.Writer, img *Image) error {
	if err := img.Validate(); err != nil {
		return err
	}

	buf := AppendHeader(make([]byte, 0, 32+len(img.Pix)*3), img.Width, img.Height)
	for _, p := range img.Pix {
		buf = append(buf, p.R, p.G, p.B)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("ppm: writing image: %w", err)
	}
	return nil
}
