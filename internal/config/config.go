// Package config loads tool configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/mrjoshuak/go-laplacian/convolve"
)

// Prefix is the environment variable prefix, e.g. LAPLACIAN_WORKERS.
const Prefix = "LAPLACIAN"

// DefaultOutput is the file the filtered image is written to.
const DefaultOutput = "laplacian.ppm"

// Config holds all configuration of the laplacian tool. The sections are
// embedded so their variables share the LAPLACIAN_ prefix directly.
type Config struct {
	FilterConfig
	OutputConfig
	LogConfig
}

// FilterConfig holds parallel filter configuration.
type FilterConfig struct {
	Workers int `envconfig:"WORKERS" default:"10"`
}

// OutputConfig holds output file configuration.
type OutputConfig struct {
	Path        string `envconfig:"OUTPUT" default:"laplacian.ppm"`
	Compression string `envconfig:"COMPRESSION"`
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		FilterConfig: FilterConfig{
			Workers: convolve.DefaultWorkers,
		},
		OutputConfig: OutputConfig{
			Path: DefaultOutput,
		},
		LogConfig: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks values that envconfig cannot.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("invalid config: workers must be positive, got %d", c.Workers)
	}
	if c.Path == "" {
		return fmt.Errorf("invalid config: empty output path")
	}
	return nil
}

// FilterOptions returns the convolve configuration.
func (c *Config) FilterOptions() convolve.Config {
	return convolve.Config{Workers: c.Workers}
}
