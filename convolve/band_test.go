package convolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/go-laplacian/ppm"
)

func TestPartitionCoverage(t *testing.T) {
	for _, height := range []int{0, 1, 2, 3, 9, 10, 11, 99, 100, 101, 1080} {
		for _, workers := range []int{1, 2, 3, 4, 7, 10, 16, 200} {
			bands, err := Partition(height, workers)
			require.NoError(t, err)
			require.Len(t, bands, workers)

			next := 0
			for i, b := range bands {
				assert.Equal(t, next, b.Start, "h=%d n=%d band %d start", height, workers, i)
				assert.GreaterOrEqual(t, b.Rows, 0)
				next = b.End()
			}
			assert.Equal(t, height, next, "h=%d n=%d bands must end at height", height, workers)

			base := height / workers
			for _, b := range bands[:workers-1] {
				assert.Equal(t, base, b.Rows)
			}
			assert.Equal(t, base+height%workers, bands[workers-1].Rows)
		}
	}
}

func TestPartitionRemainderGoesToLastBand(t *testing.T) {
	bands, err := Partition(23, 10)
	require.NoError(t, err)
	assert.Equal(t, Band{Start: 18, Rows: 5}, bands[9])
	assert.Equal(t, Band{Start: 0, Rows: 2}, bands[0])
}

func TestPartitionFewerRowsThanWorkers(t *testing.T) {
	bands, err := Partition(3, 10)
	require.NoError(t, err)
	for _, b := range bands[:9] {
		assert.Equal(t, 0, b.Rows)
	}
	assert.Equal(t, Band{Start: 0, Rows: 3}, bands[9])
}

func TestPartitionInvalidWorkers(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Partition(10, n)
		assert.ErrorIs(t, err, ErrInvalidWorkers)
	}
}

func TestBandViewWritesOnlyItsRows(t *testing.T) {
	dst, err := ppm.NewImage(4, 6)
	require.NoError(t, err)

	v := newBandView(dst, Band{Start: 2, Rows: 2})
	p := ppm.Pixel{R: 1, G: 2, B: 3}
	v.Set(3, 3, p)
	assert.Equal(t, p, dst.PixelAt(3, 3))

	assert.Panics(t, func() { v.Set(0, 1, p) })
	assert.Panics(t, func() { v.Set(0, 4, p) })
	assert.Panics(t, func() { v.Set(4, 2, p) })
	assert.Equal(t, cap(v.pix), len(v.pix), "view must not be able to grow into the next band")
}

func TestBandViewEmptyBand(t *testing.T) {
	src, err := ppm.NewImage(5, 2)
	require.NoError(t, err)
	dst, err := ppm.NewImage(5, 2)
	require.NoError(t, err)

	v := newBandView(dst, Band{Start: 0, Rows: 0})
	assert.NotPanics(t, func() { convolveBand(src, &Laplacian, v) })
	assert.Empty(t, v.pix)
}
