package convolve

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/mrjoshuak/go-laplacian/ppm"
)

// DefaultWorkers is the worker count used when Config.Workers is zero.
const DefaultWorkers = 10

// Config configures parallel filtering.
type Config struct {
	// Workers is the number of bands, and therefore goroutines, the image
	// is split into. 0 means DefaultWorkers.
	Workers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Workers: DefaultWorkers}
}

// filterBand is the per-band worker body; tests replace it to exercise
// worker failure.
var filterBand = convolveBand

// effectiveWorkers returns the number of workers to use.
func effectiveWorkers(config Config) int {
	if config.Workers == 0 {
		return DefaultWorkers
	}
	return config.Workers
}

// WorkerError reports a band worker that panicked. No output image is
// returned when any worker fails.
type WorkerError struct {
	Band  Band
	Value any
	Stack []byte
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("convolve: worker for rows [%d,%d) failed: %v", e.Band.Start, e.Band.End(), e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *WorkerError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Apply filters src with the Laplacian kernel and returns a new image of
// the same size. The rows are split into config.Workers bands (see
// Partition), one goroutine filters each band, and Apply returns once every
// band is done. src is only read.
func Apply(src *ppm.Image, config Config) (*ppm.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	bands, err := Partition(src.Height, effectiveWorkers(config))
	if err != nil {
		return nil, err
	}

	dst, err := ppm.NewImage(src.Width, src.Height)
	if err != nil {
		return nil, err
	}

	k := Laplacian
	errs := make([]*WorkerError, len(bands))

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		go func(i int, view BandView) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = &WorkerError{Band: view.Band(), Value: r, Stack: debug.Stack()}
				}
			}()
			filterBand(src, &k, view)
		}(i, newBandView(dst, b))
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return dst, nil
}

// ApplySequential filters src on the calling goroutine. It is the reference
// rendition Apply must match byte for byte.
func ApplySequential(src *ppm.Image) (*ppm.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst, err := ppm.NewImage(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	k := Laplacian
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst.SetPixel(x, y, k.At(src, x, y))
		}
	}
	return dst, nil
}
