package compression

import (
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return w
	},
}

func newGzipWriter(w io.Writer, level CompressionLevel) (io.WriteCloser, error) {
	if level == CompressionLevelDefault {
		gw := gzipWriterPool.Get().(*gzip.Writer)
		gw.Reset(w)
		return &pooledWriter{w: gw, pool: &gzipWriterPool}, nil
	}
	return gzip.NewWriterLevel(w, int(level))
}

func newGzipReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, &CorruptStreamError{Codec: Gzip, Err: err}
	}
	return gr, nil
}
