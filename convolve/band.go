package convolve

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/go-laplacian/ppm"
)

// ErrInvalidWorkers is returned for a non-positive worker count.
var ErrInvalidWorkers = errors.New("convolve: worker count must be positive")

// Band is a contiguous range of output rows owned by one worker.
type Band struct {
	Start int // first row
	Rows  int // number of rows, possibly zero
}

// End returns the row after the last row of the band.
func (b Band) End() int {
	return b.Start + b.Rows
}

// Partition splits height rows into exactly workers bands. Every band has
// height/workers rows except the last, which also takes the remaining
// height%workers rows. When height < workers all but the last band are
// empty.
func Partition(height, workers int) ([]Band, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if height < 0 {
		return nil, fmt.Errorf("convolve: negative height %d", height)
	}

	base := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{Start: i * base, Rows: base}
	}
	bands[workers-1].Rows += height % workers
	return bands, nil
}

// BandView is the write-exclusive window of an output image covering one
// band. Its backing slice is capped at the band's last row, so a view can
// never reach rows owned by another band.
type BandView struct {
	band  Band
	width int
	pix   []ppm.Pixel
}

func newBandView(dst *ppm.Image, b Band) BandView {
	lo := b.Start * dst.Width
	hi := b.End() * dst.Width
	return BandView{
		band:  b,
		width: dst.Width,
		pix:   dst.Pix[lo:hi:hi],
	}
}

// Band returns the rows covered by the view.
func (v BandView) Band() Band {
	return v.band
}

// Set stores p at column x of absolute row y. It panics if (x, y) lies
// outside the band.
func (v BandView) Set(x, y int, p ppm.Pixel) {
	if y < v.band.Start || y >= v.band.End() || x < 0 || x >= v.width {
		panic(fmt.Sprintf("convolve: pixel (%d,%d) outside band rows [%d,%d)", x, y, v.band.Start, v.band.End()))
	}
	v.pix[(y-v.band.Start)*v.width+x] = p
}

// convolveBand filters every pixel of the view's band from src.
func convolveBand(src *ppm.Image, k *Kernel, v BandView) {
	for y := v.band.Start; y < v.band.End(); y++ {
		for x := 0; x < src.Width; x++ {
			v.Set(x, y, k.At(src, x, y))
		}
	}
}
