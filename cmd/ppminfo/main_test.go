package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/go-laplacian/compression"
	"github.com/mrjoshuak/go-laplacian/ppm"
)

func writeImage(t *testing.T, path string, p ppm.Pixel, codec compression.Codec) {
	t.Helper()
	img, err := ppm.NewImage(4, 3)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = p
	}
	require.NoError(t, ppm.WriteFile(path, img, codec))
}

func TestRunValidFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ppm")
	b := filepath.Join(dir, "b.ppm.gz")
	writeImage(t, a, ppm.Pixel{R: 9}, compression.None)
	writeImage(t, b, ppm.Pixel{R: 9}, compression.Gzip)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-s", a, b}, &stdout, &stderr))
	out := stdout.String()
	assert.Contains(t, out, "a.ppm: OK")
	assert.Contains(t, out, "compression: gzip")
	assert.Contains(t, out, "size:        4x3")
	assert.Contains(t, out, "edge ratio:  1.0000")
	assert.Contains(t, out, "Summary: 2 of 2 files valid")
}

func TestRunInvalidFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ppm")
	require.NoError(t, os.WriteFile(bad, []byte("P5\n1 1\n255\n\x00"), 0o644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{bad}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "INVALID")

	stdout.Reset()
	assert.Equal(t, 1, run([]string{"-q", bad}, &stdout, &stderr))
	assert.NotContains(t, stdout.String(), "INVALID")
	assert.Contains(t, stdout.String(), "not a binary PPM")
}

func TestRunCompare(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ppm")
	b := filepath.Join(dir, "b.ppm.zst")
	c := filepath.Join(dir, "c.ppm")
	writeImage(t, a, ppm.Pixel{B: 1}, compression.None)
	writeImage(t, b, ppm.Pixel{B: 1}, compression.Zstd)
	writeImage(t, c, ppm.Pixel{B: 2}, compression.None)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"--compare", a, b}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "matches")

	stdout.Reset()
	assert.Equal(t, 1, run([]string{"--compare", a, c}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "channel B: 12 pixels differ")

	stdout.Reset()
	assert.Equal(t, 2, run([]string{"--compare", filepath.Join(dir, "missing.ppm"), a}, &stdout, &stderr))
}

func TestRunZlibLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ppm.zz")
	writeImage(t, path, ppm.Pixel{G: 3}, compression.Zlib)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "compression: zlib (default)")
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"--bogus", "x.ppm"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"--compare"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{filepath.Join(t.TempDir(), "missing.ppm")}, &stdout, &stderr))
	assert.Equal(t, 0, run([]string{"--version"}, &stdout, &stderr))
}
