package ppm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrjoshuak/go-laplacian/compression"
)

// errNotMappable is returned by mapFile for pipes, devices and other files
// without a fixed size.
var errNotMappable = errors.New("ppm: not a regular file")

// ReadFile decodes the P6 image stored at path. Files compressed with
// gzip, zlib or zstd are detected from their magic bytes and decompressed
// on the fly. Plain regular files are memory-mapped; pipes and devices are
// decoded as a stream.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ppm: cannot open %s: %w", path, err)
	}
	defer f.Close()

	var peek [compression.SniffLen]byte
	n, err := io.ReadFull(f, peek[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("ppm: reading %s: %w", path, err)
	}
	// The sniffed bytes are replayed so that unseekable input decodes too.
	stream := io.MultiReader(bytes.NewReader(peek[:n]), f)

	if codec := compression.Detect(peek[:n]); codec != compression.None {
		rc, err := compression.NewCodecReader(stream, codec)
		if err != nil {
			return nil, fmt.Errorf("ppm: reading %s: %w", path, err)
		}
		defer rc.Close()
		return Decode(rc)
	}

	data, unmap, err := mapFile(f)
	if err != nil {
		return Decode(stream)
	}
	defer unmap()
	return DecodeBytes(data)
}

// mappableSize returns the size of f, or errNotMappable unless f is a
// regular file whose size fits in an int.
func mappableSize(f *os.File) (int, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if !fi.Mode().IsRegular() || fi.Size() != int64(int(fi.Size())) {
		return 0, errNotMappable
	}
	return int(fi.Size()), nil
}

func noUnmap() error { return nil }

// WriteFile encodes img to path, compressing it with codec. The image is
// written to a temporary file in the same directory and renamed over path
// only once encoding succeeded, so a failed write leaves no partial file.
func WriteFile(path string, img *Image, codec compression.Codec) (err error) {
	if err := img.Validate(); err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("ppm: cannot create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w, err := compression.NewWriter(tmp, codec)
	if err != nil {
		return fmt.Errorf("ppm: writing %s: %w", path, err)
	}
	if err := Encode(w, img); err != nil {
		w.Close()
		return fmt.Errorf("ppm: writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ppm: writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil && !errors.Is(err, errors.ErrUnsupported) {
		return fmt.Errorf("ppm: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ppm: writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ppm: writing %s: %w", path, err)
	}
	return nil
}
