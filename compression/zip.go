package compression

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// CompressionLevel represents a deflate or zstd compression level.
// Valid values are -2 to 9, where:
//   - -2: Huffman-only compression (klauspost extension)
//   - -1: Default compression
//   - 0: No compression (store)
//   - 1: Best speed
//   - 9: Best compression
type CompressionLevel int

// Standard compression levels
const (
	CompressionLevelHuffmanOnly CompressionLevel = -2 // Huffman-only (fastest, klauspost)
	CompressionLevelDefault     CompressionLevel = -1 // Default (level 6)
	CompressionLevelNone        CompressionLevel = 0  // No compression
	CompressionLevelBestSpeed   CompressionLevel = 1  // Best speed
	CompressionLevelBestSize    CompressionLevel = 9  // Best compression
)

// FLevel represents the compression level category from zlib header.
// This is a 2-bit field in the zlib header indicating the general
// compression level category, not the exact level.
type FLevel int

const (
	FLevelFastest FLevel = 0 // Fastest algorithm (levels -2, 0, 1)
	FLevelFast    FLevel = 1 // Fast algorithm (levels 2, 3, 4, 5)
	FLevelDefault FLevel = 2 // Default algorithm (levels 6, -1)
	FLevelBest    FLevel = 3 // Maximum compression (levels 7, 8, 9)
)

func (l FLevel) String() string {
	switch l {
	case FLevelFastest:
		return "fastest"
	case FLevelFast:
		return "fast"
	case FLevelDefault:
		return "default"
	case FLevelBest:
		return "best"
	}
	return fmt.Sprintf("FLevel(%d)", int(l))
}

// DetectZlibFLevel extracts the FLEVEL from a zlib stream header.
// Returns the FLevel and true if successful, or 0 and false if the
// data is too short or has an invalid header.
func DetectZlibFLevel(data []byte) (FLevel, bool) {
	if len(data) < 2 {
		return 0, false
	}

	cmf := data[0]
	flg := data[1]

	// Compression method must be 8 (deflate) with a window of at most 32K.
	if cmf&0x0f != 8 || cmf>>4 > 7 {
		return 0, false
	}

	// Header checksum
	h := uint16(cmf)<<8 | uint16(flg)
	if h%31 != 0 {
		return 0, false
	}

	return FLevel((flg >> 6) & 0x03), true
}

// zlibWriterPool holds default-level writers; Reset rebinds the destination.
var zlibWriterPool = sync.Pool{
	New: func() any {
		w, _ := zlib.NewWriterLevel(io.Discard, zlib.DefaultCompression)
		return w
	},
}

func newZlibWriter(w io.Writer, level CompressionLevel) (io.WriteCloser, error) {
	if level == CompressionLevelDefault {
		zw := zlibWriterPool.Get().(*zlib.Writer)
		zw.Reset(w)
		return &pooledWriter{w: zw, pool: &zlibWriterPool}, nil
	}
	return zlib.NewWriterLevel(w, int(level))
}

func newZlibReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, &CorruptStreamError{Codec: Zlib, Err: err}
	}
	return zr, nil
}
