package compression

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdWriterPool = sync.Pool{
	New: func() any {
		w, _ := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		return w
	},
}

// zstdLevel maps a deflate-style level onto the zstd speed presets.
func zstdLevel(level CompressionLevel) zstd.EncoderLevel {
	switch {
	case level == CompressionLevelDefault:
		return zstd.SpeedDefault
	case level <= CompressionLevelBestSpeed:
		return zstd.SpeedFastest
	default:
		return zstd.EncoderLevelFromZstd(int(level))
	}
}

func newZstdWriter(w io.Writer, level CompressionLevel) (io.WriteCloser, error) {
	if level == CompressionLevelDefault {
		zw := zstdWriterPool.Get().(*zstd.Encoder)
		zw.Reset(w)
		return &pooledWriter{w: zw, pool: &zstdWriterPool}, nil
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstdLevel(level)), zstd.WithEncoderConcurrency(1))
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, &CorruptStreamError{Codec: Zstd, Err: err}
	}
	return d.IOReadCloser(), nil
}
