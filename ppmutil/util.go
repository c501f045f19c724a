// Package ppmutil provides higher-level operations on PPM files: file
// information, per-channel statistics, validation and comparison.
//
// Example usage:
//
//	info, _ := ppmutil.GetFileInfo("edges.ppm.gz")
//	fmt.Printf("Size: %dx%d, Compression: %v\n", info.Width, info.Height, info.Compression)
//
//	img, _ := ppm.ReadFile("edges.ppm")
//	st := ppmutil.ComputeStats(img)
//	fmt.Printf("edge ratio %.3f\n", st.EdgeRatio)
package ppmutil

import (
	"bufio"
	"fmt"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/mrjoshuak/go-laplacian/compression"
	"github.com/mrjoshuak/go-laplacian/ppm"
)

// ===========================================
// File Information
// ===========================================

// FileInfo provides a summary of a PPM file.
type FileInfo struct {
	Path        string
	Width       int
	Height      int
	MaxVal      int
	HeaderSize  int
	Compression compression.Codec
	ZlibLevel   compression.FLevel // only set when Compression is Zlib
	FileSize    int64
}

// GetFileInfo reads only the header of the file at path.
func GetFileInfo(path string) (*FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var level compression.FLevel
	if peek, _ := br.Peek(compression.SniffLen); compression.Detect(peek) == compression.Zlib {
		level, _ = compression.DetectZlibFLevel(peek)
	}

	rc, codec, err := compression.NewReader(br)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	h, err := ppm.ReadHeader(bufio.NewReader(rc))
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Path:        path,
		Width:       h.Width,
		Height:      h.Height,
		MaxVal:      h.MaxVal,
		HeaderSize:  h.Size,
		Compression: codec,
		ZlibLevel:   level,
		FileSize:    fi.Size(),
	}, nil
}

// ===========================================
// Channel Utilities
// ===========================================

// Channel selects one color channel.
type Channel int

// Color channels
const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ExtractChannel returns one channel of img as float64 samples in
// row-major order.
func ExtractChannel(img *ppm.Image, c Channel) []float64 {
	out := make([]float64, len(img.Pix))
	for i, p := range img.Pix {
		switch c {
		case Red:
			out[i] = float64(p.R)
		case Green:
			out[i] = float64(p.G)
		case Blue:
			out[i] = float64(p.B)
		}
	}
	return out
}

// ChannelStats summarizes one channel.
type ChannelStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats summarizes an image.
type Stats struct {
	Channels [3]ChannelStats // indexed by Channel

	// EdgeRatio is the fraction of pixels with at least one non-zero
	// channel. For a Laplacian-filtered image this is the share of pixels
	// that lie on an edge.
	EdgeRatio float64
}

// ComputeStats computes per-channel statistics of img.
func ComputeStats(img *ppm.Image) Stats {
	var st Stats
	for _, c := range []Channel{Red, Green, Blue} {
		samples := ExtractChannel(img, c)
		cs := ChannelStats{Min: 255}
		if len(samples) > 1 {
			cs.Mean, cs.StdDev = stat.MeanStdDev(samples, nil)
		} else if len(samples) == 1 {
			cs.Mean = samples[0]
		}
		for _, v := range samples {
			cs.Min = min(cs.Min, v)
			cs.Max = max(cs.Max, v)
		}
		st.Channels[c] = cs
	}

	edges := 0
	for _, p := range img.Pix {
		if p != (ppm.Pixel{}) {
			edges++
		}
	}
	if len(img.Pix) > 0 {
		st.EdgeRatio = float64(edges) / float64(len(img.Pix))
	}
	return st
}

// ===========================================
// Validation
// ===========================================

// ValidationResult contains the results of file validation.
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string

	// Info and Image are set when the file decoded successfully.
	Info  *FileInfo
	Image *ppm.Image
}

// ValidateFile fully decodes the file at path and reports problems.
// Problems with the file itself are reported in the result, not as an error.
// A valid result carries the decoded image so callers need not read the
// file again.
func ValidateFile(path string) (*ValidationResult, error) {
	result := &ValidationResult{Valid: true}

	info, err := GetFileInfo(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read header: %v", err))
		return result, nil
	}

	img, err := ppm.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("cannot decode image: %v", err))
		return result, nil
	}

	if info.Width > 32768 || info.Height > 32768 {
		result.Warnings = append(result.Warnings, "very large image dimensions")
	}
	if info.Compression == compression.None {
		trailing := info.FileSize - int64(info.HeaderSize) - int64(len(img.Pix)*3)
		if trailing > 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%d trailing bytes after raster", trailing))
		}
	}

	result.Info = info
	result.Image = img
	return result, nil
}

// ===========================================
// Comparison
// ===========================================

// CompareOptions configures image comparison behavior.
type CompareOptions struct {
	Tolerance uint8 // Maximum allowed per-channel difference
}

// CompareImages lists the differences between two images.
func CompareImages(img1, img2 *ppm.Image, opts CompareOptions) []string {
	if img1.Width != img2.Width || img1.Height != img2.Height {
		return []string{fmt.Sprintf("dimensions differ: %dx%d vs %dx%d",
			img1.Width, img1.Height, img2.Width, img2.Height)}
	}

	var diffs []string
	for _, c := range []Channel{Red, Green, Blue} {
		data1 := ExtractChannel(img1, c)
		data2 := ExtractChannel(img2, c)

		maxDiff := 0.0
		diffCount := 0
		for i := range data1 {
			diff := data1[i] - data2[i]
			if diff < 0 {
				diff = -diff
			}
			if diff > float64(opts.Tolerance) {
				diffCount++
				maxDiff = max(maxDiff, diff)
			}
		}

		if diffCount > 0 {
			diffs = append(diffs, fmt.Sprintf("channel %s: %d pixels differ (max diff: %.0f)",
				c, diffCount, maxDiff))
		}
	}
	return diffs
}
