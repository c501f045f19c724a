// ppminfo validates binary PPM (P6) files and prints their properties.
//
// Usage:
//
//	ppminfo [-q|--quiet] [-s|--stats] [--compare <ref>] <filename> [<filename> ...]
//
// Options:
//
//	-q, --quiet       Only output errors. Exit code indicates pass/fail.
//	-s, --stats       Print per-channel statistics and the edge ratio.
//	--compare <ref>   Compare every file's pixels against ref.
//	-h, --help        Show this help message.
//	--version         Show version information.
//
// Exit codes:
//
//	0: All files valid (and equal to ref when comparing)
//	1: One or more files invalid or different
//	2: Error (file not found, etc.)
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrjoshuak/go-laplacian/compression"
	"github.com/mrjoshuak/go-laplacian/ppm"
	"github.com/mrjoshuak/go-laplacian/ppmutil"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	quiet := false
	stats := false
	compare := ""
	files := []string{}

	// Parse command line arguments
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-q", "--quiet":
			quiet = true
		case "-s", "--stats":
			stats = true
		case "--compare", "-compare":
			if i+1 >= len(args) {
				fmt.Fprintln(stderr, "Error: --compare requires a reference file")
				return 2
			}
			i++
			compare = args[i]
		case "-h", "--help":
			printUsage(stdout)
			return 0
		case "--version":
			fmt.Fprintf(stdout, "ppminfo version %s\n", version)
			return 0
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(stderr, "Unknown option: %s\n", arg)
				printUsage(stderr)
				return 2
			}
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(stderr, "Error: No input files specified")
		printUsage(stderr)
		return 2
	}

	var ref *ppm.Image
	if compare != "" {
		var err error
		if ref, err = ppm.ReadFile(compare); err != nil {
			fmt.Fprintf(stderr, "Error: reference: %v\n", err)
			return 2
		}
	}

	validCount := 0
	errorOccurred := false

	for _, filename := range files {
		ok, err := checkFile(stdout, filename, quiet, stats, ref, compare)
		if err != nil {
			if !quiet {
				fmt.Fprintf(stderr, "%s: error: %v\n", filename, err)
			}
			errorOccurred = true
			continue
		}
		if ok {
			validCount++
		}
	}

	if len(files) > 1 && !quiet {
		fmt.Fprintf(stdout, "\nSummary: %d of %d files valid\n", validCount, len(files))
	}

	if errorOccurred {
		return 2
	}
	if validCount < len(files) {
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: ppminfo [options] <filename> [<filename> ...]

Validate binary PPM (P6) files, optionally compressed with gzip, zlib or zstd.

Options:
  -q, --quiet       Only output errors. Exit code indicates pass/fail.
  -s, --stats       Print per-channel statistics and the edge ratio.
  --compare <ref>   Compare every file's pixels against ref.
  -h, --help        Show this help message.
  --version         Show version information.

Exit codes:
  0: All files valid
  1: One or more files invalid or different
  2: Error (file not found, permission denied, etc.)`)
}

// checkFile validates one file and prints its report. It returns false if
// the file is invalid or differs from ref.
func checkFile(w io.Writer, filename string, quiet, stats bool, ref *ppm.Image, refName string) (bool, error) {
	if _, err := os.Stat(filename); err != nil {
		return false, err
	}

	result, err := ppmutil.ValidateFile(filename)
	if err != nil {
		return false, err
	}
	if !result.Valid {
		if quiet {
			for _, msg := range result.Errors {
				fmt.Fprintf(w, "%s: %s\n", filename, msg)
			}
			return false, nil
		}
		fmt.Fprintf(w, "%s: INVALID\n", filename)
		for _, msg := range result.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", msg)
		}
		return false, nil
	}

	var diffs []string
	if ref != nil {
		diffs = ppmutil.CompareImages(result.Image, ref, ppmutil.CompareOptions{})
	}

	if quiet {
		for _, d := range diffs {
			fmt.Fprintf(w, "%s: %s\n", filename, d)
		}
		return len(diffs) == 0, nil
	}

	info := result.Info
	fmt.Fprintf(w, "%s: OK\n", filename)
	fmt.Fprintf(w, "  size:        %dx%d\n", info.Width, info.Height)
	if info.Compression == compression.Zlib {
		fmt.Fprintf(w, "  compression: %s (%s)\n", info.Compression, info.ZlibLevel)
	} else {
		fmt.Fprintf(w, "  compression: %s\n", info.Compression)
	}
	fmt.Fprintf(w, "  file size:   %d bytes\n", info.FileSize)
	for _, msg := range result.Warnings {
		fmt.Fprintf(w, "  [WARNING] %s\n", msg)
	}

	if stats {
		st := ppmutil.ComputeStats(result.Image)
		for _, c := range []ppmutil.Channel{ppmutil.Red, ppmutil.Green, ppmutil.Blue} {
			cs := st.Channels[c]
			fmt.Fprintf(w, "  %s: mean %.2f stddev %.2f min %.0f max %.0f\n", c, cs.Mean, cs.StdDev, cs.Min, cs.Max)
		}
		fmt.Fprintf(w, "  edge ratio:  %.4f\n", st.EdgeRatio)
	}

	if ref != nil {
		if len(diffs) == 0 {
			fmt.Fprintf(w, "  matches %s\n", refName)
		}
		for _, d := range diffs {
			fmt.Fprintf(w, "  [DIFF] %s\n", d)
		}
	}
	return len(diffs) == 0, nil
}
