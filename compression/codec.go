// Package compression provides transparent stream compression for PPM files.
//
// Three container formats are supported, all backed by
// github.com/klauspost/compress: gzip (.gz), zlib (.zz) and zstd (.zst).
// Readers detect the format from the leading magic bytes, so a compressed
// P6 file decodes exactly like a plain one.
package compression

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Codec identifies a stream compression format.
type Codec int

// Supported codecs
const (
	None Codec = iota
	Gzip
	Zlib
	Zstd
)

// ErrUnknownCodec is returned when a codec name cannot be parsed.
var ErrUnknownCodec = errors.New("compression: unknown codec")

// SniffLen is the number of leading bytes Detect needs.
const SniffLen = 4

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Codec(%d)", int(c))
	}
}

// Extension returns the conventional file suffix for the codec, or "" for None.
func (c Codec) Extension() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zlib:
		return ".zz"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// ParseCodec converts a codec name ("none", "gzip", "zlib", "zstd") to a Codec.
// The empty string parses as None.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib", "zz":
		return Zlib, nil
	case "zstd", "zst":
		return Zstd, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCodec, s)
}

// FromPath infers a codec from the file name suffix.
func FromPath(name string) Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return Gzip
	case ".zz":
		return Zlib
	case ".zst":
		return Zstd
	default:
		return None
	}
}

// Detect identifies the codec of a stream from its first bytes.
// Data that matches no known signature is reported as None.
func Detect(peek []byte) Codec {
	switch {
	case len(peek) >= 4 && peek[0] == 0x28 && peek[1] == 0xb5 && peek[2] == 0x2f && peek[3] == 0xfd:
		return Zstd
	case len(peek) >= 2 && peek[0] == 0x1f && peek[1] == 0x8b:
		return Gzip
	}
	if _, ok := DetectZlibFLevel(peek); ok {
		return Zlib
	}
	return None
}

// NewReader sniffs the codec of r and returns a reader yielding the
// decompressed stream. Uncompressed input is passed through unchanged.
func NewReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(SniffLen)
	if err != nil && err != io.EOF {
		return nil, None, err
	}
	c := Detect(peek)
	rc, err := NewCodecReader(br, c)
	if err != nil {
		return nil, c, err
	}
	return rc, c, nil
}

// NewCodecReader returns a reader that decompresses r with codec c.
func NewCodecReader(r io.Reader, c Codec) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return newGzipReader(r)
	case Zlib:
		return newZlibReader(r)
	case Zstd:
		return newZstdReader(r)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCodec, c)
}

// NewWriter returns a writer compressing into w with codec c at the default
// level. Close must be called to flush the stream; it does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	return NewWriterLevel(w, c, CompressionLevelDefault)
}

// NewWriterLevel is like NewWriter with an explicit compression level.
func NewWriterLevel(w io.Writer, c Codec, level CompressionLevel) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return newGzipWriter(w, level)
	case Zlib:
		return newZlibWriter(w, level)
	case Zstd:
		return newZstdWriter(w, level)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCodec, c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
