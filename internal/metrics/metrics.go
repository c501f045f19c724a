// Package metrics records filter run statistics with Prometheus and writes
// them in the text exposition format, for pickup by the node_exporter
// textfile collector.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mrjoshuak/go-laplacian/convolve"
)

const namespace = "laplacian"

// Run describes one completed filter run.
type Run struct {
	Width    int
	Height   int
	Bands    []convolve.Band
	Duration time.Duration
	Finished time.Time
}

// Recorder holds the metrics of a filter run in a private registry.
type Recorder struct {
	registry *prometheus.Registry

	duration    prometheus.Gauge
	pixels      prometheus.Gauge
	workers     prometheus.Gauge
	bandRows    *prometheus.GaugeVec
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filter_duration_seconds",
			Help:      "Wall-clock time of the parallel filter phase.",
		}),
		pixels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "image_pixels",
			Help:      "Number of pixels in the filtered image.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Number of band workers used.",
		}),
		bandRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "band_rows",
			Help:      "Rows assigned to each band worker.",
		}, []string{"band"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
	r.registry.MustRegister(r.duration, r.pixels, r.workers, r.bandRows, r.lastSuccess)
	return r
}

// Observe records a completed run.
func (r *Recorder) Observe(run Run) {
	r.duration.Set(run.Duration.Seconds())
	r.pixels.Set(float64(run.Width * run.Height))
	r.workers.Set(float64(len(run.Bands)))
	r.bandRows.Reset()
	for i, b := range run.Bands {
		r.bandRows.WithLabelValues(strconv.Itoa(i)).Set(float64(b.Rows))
	}
	if !run.Finished.IsZero() {
		r.lastSuccess.Set(float64(run.Finished.UnixNano()) / 1e9)
	}
}

// WriteFile atomically writes the metrics to path.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
