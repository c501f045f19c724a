// laplacian applies a 3x3 Laplacian edge filter to a binary PPM (P6) image.
//
// The image rows are split into equal horizontal bands (the last band also
// takes any leftover rows) which are filtered concurrently. Only the
// filtering phase is timed.
//
// Usage:
//
//	laplacian [options] <input.ppm>
//
// Options:
//
//	-o <file>       output file (default: laplacian.ppm)
//	-workers <n>    number of band workers (default: 10)
//	-c <type>       output compression (none, gzip, zlib, zstd);
//	                default: inferred from the output file name
//	-metrics <file> write Prometheus textfile metrics after the run
//	-v              verbose output, including output image statistics
//	-version        show version information
//
// Every option can also be set through the environment: LAPLACIAN_OUTPUT,
// LAPLACIAN_WORKERS, LAPLACIAN_COMPRESSION, LAPLACIAN_METRICS_FILE,
// LAPLACIAN_LOG_LEVEL and LAPLACIAN_LOG_DEV. Flags take precedence.
//
// Input files compressed with gzip, zlib or zstd are decompressed
// transparently. Calling laplacian with the wrong number of arguments
// prints the usage line and exits with status 0.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrjoshuak/go-laplacian/compression"
	"github.com/mrjoshuak/go-laplacian/convolve"
	"github.com/mrjoshuak/go-laplacian/internal/config"
	"github.com/mrjoshuak/go-laplacian/internal/logging"
	"github.com/mrjoshuak/go-laplacian/internal/metrics"
	"github.com/mrjoshuak/go-laplacian/ppm"
	"github.com/mrjoshuak/go-laplacian/ppmutil"
)

const version = "1.0.0"

const usageLine = "Usage: laplacian [options] <input.ppm>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the resolved settings of one invocation.
type options struct {
	input       string
	output      string
	filter      convolve.Config
	codec       compression.Codec
	metricsFile string
	verbose     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	// Environment errors are reported after the usage check.
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}

	fs := flag.NewFlagSet("laplacian", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", cfg.Path, "output file")
	workers := fs.Int("workers", cfg.Workers, "number of band workers")
	codecName := fs.String("c", cfg.Compression, "output compression (none, gzip, zlib, zstd)")
	metricsFile := fs.String("metrics", cfg.MetricsFile, "write Prometheus textfile metrics to `file`")
	verbose := fs.Bool("v", false, "verbose output")
	showVersion := fs.Bool("version", false, "show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\n", usageLine)
		fmt.Fprintf(stderr, "Apply a 3x3 Laplacian edge filter to a binary PPM (P6) image.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "laplacian version %s\n", version)
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stdout, usageLine)
		return 0
	}

	if cfgErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", cfgErr)
		return 1
	}

	cfg.Path = *output
	cfg.Workers = *workers
	cfg.Compression = *codecName
	cfg.MetricsFile = *metricsFile
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	opts := options{
		input:       fs.Arg(0),
		output:      cfg.Path,
		filter:      cfg.FilterOptions(),
		metricsFile: cfg.MetricsFile,
		verbose:     *verbose,
	}
	var err error
	if cfg.Compression == "" {
		opts.codec = compression.FromPath(opts.output)
	} else if opts.codec, err = compression.ParseCodec(cfg.Compression); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Level
	logCfg.Development = cfg.Development
	if opts.verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid log configuration: %v\n", err)
		return 1
	}
	log := logger.With(zap.String("run_id", uuid.NewString()))
	defer log.Sync()

	if err := filter(opts, stdout, log); err != nil {
		log.Error("laplacian failed", zap.Error(err))
		return 1
	}
	return 0
}

// filter decodes the input, runs the parallel filter, encodes the result
// and reports the elapsed filter time.
func filter(opts options, stdout io.Writer, log *logging.Logger) error {
	img, err := ppm.ReadFile(opts.input)
	if err != nil {
		return err
	}
	log.Info("image loaded",
		zap.String("input", opts.input),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("workers", opts.filter.Workers),
	)

	start := time.Now()
	result, err := convolve.Apply(img, opts.filter)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if err := ppm.WriteFile(opts.output, result, opts.codec); err != nil {
		return err
	}
	log.Info("image written",
		zap.String("output", opts.output),
		zap.Stringer("compression", opts.codec),
		zap.Duration("elapsed", elapsed),
	)

	if opts.verbose {
		st := ppmutil.ComputeStats(result)
		log.Debug("output statistics",
			zap.Float64("edge_ratio", st.EdgeRatio),
			zap.Float64("mean_r", st.Channels[ppmutil.Red].Mean),
			zap.Float64("mean_g", st.Channels[ppmutil.Green].Mean),
			zap.Float64("mean_b", st.Channels[ppmutil.Blue].Mean),
		)
	}

	if opts.metricsFile != "" {
		bands, err := convolve.Partition(img.Height, opts.filter.Workers)
		if err != nil {
			return err
		}
		rec := metrics.NewRecorder()
		rec.Observe(metrics.Run{
			Width:    img.Width,
			Height:   img.Height,
			Bands:    bands,
			Duration: elapsed,
			Finished: time.Now(),
		})
		if err := rec.WriteFile(opts.metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	fmt.Fprintf(stdout, "\nElapsed time: %.3f seconds\n", elapsed.Seconds())
	return nil
}
