package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/go-laplacian/convolve"
)

func TestObserve(t *testing.T) {
	bands, err := convolve.Partition(23, 4)
	require.NoError(t, err)

	r := NewRecorder()
	r.Observe(Run{
		Width:    10,
		Height:   23,
		Bands:    bands,
		Duration: 1500 * time.Millisecond,
		Finished: time.Unix(1700000000, 0),
	})

	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
	assert.Equal(t, 230.0, testutil.ToFloat64(r.pixels))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.workers))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.bandRows.WithLabelValues("0")))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.bandRows.WithLabelValues("3")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccess))
}

func TestWriteFile(t *testing.T) {
	bands, err := convolve.Partition(4, 2)
	require.NoError(t, err)

	r := NewRecorder()
	r.Observe(Run{Width: 4, Height: 4, Bands: bands, Duration: time.Millisecond})

	path := filepath.Join(t.TempDir(), "laplacian.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "laplacian_filter_duration_seconds 0.001")
	assert.Contains(t, text, "laplacian_image_pixels 16")
	assert.Contains(t, text, `laplacian_band_rows{band="1"} 2`)
}
