// Package convolve applies the 3x3 Laplacian edge filter to PPM images,
// splitting the rows into horizontal bands that are filtered concurrently.
//
// Neighbors are sampled with wraparound (toroidal) addressing: a pixel on
// the left edge reads its left neighbors from the right edge, a pixel on
// the top row reads from the bottom row, and so on. Output is identical for
// every worker count.
package convolve

import "github.com/mrjoshuak/go-laplacian/ppm"

// Kernel is a 3x3 integer convolution kernel indexed as k[dx+1][dy+1],
// where dx and dy are the horizontal and vertical neighbor offsets.
type Kernel [3][3]int

// Laplacian is the edge-detection kernel applied by Apply. Its weights sum
// to zero, so uniform regions filter to black.
var Laplacian = Kernel{
	{-1, -1, -1},
	{-1, 8, -1},
	{-1, -1, -1},
}

// Sum returns the sum of all kernel weights.
func (k *Kernel) Sum() int {
	s := 0
	for _, col := range k {
		for _, w := range col {
			s += w
		}
	}
	return s
}

// At computes the filtered pixel at (x, y) of src. Each channel is the
// weighted sum of the 3x3 wraparound neighborhood clamped to [0, 255].
func (k *Kernel) At(src *ppm.Image, x, y int) ppm.Pixel {
	w, h := src.Width, src.Height

	var rows [3]int
	var cols [3]int
	for d := -1; d <= 1; d++ {
		rows[d+1] = (y + d + h) % h * w
		cols[d+1] = (x + d + w) % w
	}

	var r, g, b int
	for dx := 0; dx < 3; dx++ {
		for dy := 0; dy < 3; dy++ {
			wt := k[dx][dy]
			p := src.Pix[rows[dy]+cols[dx]]
			r += wt * int(p.R)
			g += wt * int(p.G)
			b += wt * int(p.B)
		}
	}
	return ppm.Pixel{R: clamp(r), G: clamp(g), B: clamp(b)}
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
