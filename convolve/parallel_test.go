package convolve

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/go-laplacian/ppm"
)

func randomImage(t testing.TB, w, h int, seed int64) *ppm.Image {
	t.Helper()
	img, err := ppm.NewImage(w, h)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Pix {
		img.Pix[i] = ppm.Pixel{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
	}
	return img
}

func TestApplySolidIsBlack(t *testing.T) {
	src := solidImage(t, 4, 4, ppm.Pixel{R: 100, G: 100, B: 100})
	dst, err := Apply(src, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 4, dst.Width)
	assert.Equal(t, 4, dst.Height)
	for i, p := range dst.Pix {
		assert.Equal(t, ppm.Pixel{}, p, "pixel %d", i)
	}
}

func TestApplyCheckerboard(t *testing.T) {
	white := ppm.Pixel{R: 255, G: 255, B: 255}
	black := ppm.Pixel{}
	src := &ppm.Image{Width: 2, Height: 2, Pix: []ppm.Pixel{white, black, black, white}}

	// A white pixel sees itself at weight 8 and four wrapped whites at -1:
	// 8*255 - 4*255 = 1020, clamped to 255. A black pixel sees four whites
	// at -1: -1020, clamped to 0.
	dst, err := Apply(src, Config{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, []ppm.Pixel{white, black, black, white}, dst.Pix)
}

func TestApplySinglePixel(t *testing.T) {
	src := solidImage(t, 1, 1, ppm.Pixel{R: 7, G: 8, B: 9})
	dst, err := Apply(src, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []ppm.Pixel{{}}, dst.Pix)
}

func TestApplyMatchesSequential(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {13, 11}, {64, 37}, {100, 3}}
	for _, sz := range sizes {
		src := randomImage(t, sz[0], sz[1], int64(sz[0]*1000+sz[1]))
		want, err := ApplySequential(src)
		require.NoError(t, err)

		for _, workers := range []int{1, 2, 3, 4, 5, 8, 10, 16, 50} {
			got, err := Apply(src, Config{Workers: workers})
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "%dx%d with %d workers differs from sequential", sz[0], sz[1], workers)
		}
	}
}

func TestApplyDeterministic(t *testing.T) {
	src := randomImage(t, 31, 29, 42)
	first, err := Apply(src, DefaultConfig())
	require.NoError(t, err)
	second, err := Apply(src, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	src := randomImage(t, 17, 9, 7)
	orig := &ppm.Image{Width: src.Width, Height: src.Height, Pix: append([]ppm.Pixel(nil), src.Pix...)}

	_, err := Apply(src, Config{Workers: 4})
	require.NoError(t, err)
	assert.True(t, orig.Equal(src))
}

func TestApplyInvalidInput(t *testing.T) {
	_, err := Apply(&ppm.Image{Width: 2, Height: 2, Pix: make([]ppm.Pixel, 3)}, DefaultConfig())
	assert.ErrorIs(t, err, ppm.ErrBufferSize)

	_, err = Apply(&ppm.Image{}, DefaultConfig())
	assert.ErrorIs(t, err, ppm.ErrInvalidDimensions)

	_, err = Apply(solidImage(t, 2, 2, ppm.Pixel{}), Config{Workers: -3})
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestApplyWorkerFailure(t *testing.T) {
	boom := errors.New("boom")
	orig := filterBand
	defer func() { filterBand = orig }()
	filterBand = func(src *ppm.Image, k *Kernel, v BandView) {
		if v.Band().Start == 4 {
			panic(boom)
		}
		convolveBand(src, k, v)
	}

	dst, err := Apply(randomImage(t, 8, 8, 1), Config{Workers: 4})
	assert.Nil(t, dst, "no partial image on worker failure")

	var werr *WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, Band{Start: 4, Rows: 2}, werr.Band)
	assert.ErrorIs(t, err, boom)
	assert.NotEmpty(t, werr.Stack)
}

func BenchmarkApply(b *testing.B) {
	src := randomImage(b, 1920, 1080, 1)
	for _, workers := range []int{1, 4, 10} {
		b.Run(fmt.Sprintf("Workers%d", workers), func(b *testing.B) {
			b.SetBytes(int64(len(src.Pix) * 3))
			for i := 0; i < b.N; i++ {
				if _, err := Apply(src, Config{Workers: workers}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
