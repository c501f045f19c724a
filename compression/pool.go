package compression

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrWriterClosed is returned when writing to a pooled writer after Close.
var ErrWriterClosed = errors.New("compression: write after close")

// CorruptStreamError reports a stream whose container header could not be
// parsed by the codec it was detected as.
type CorruptStreamError struct {
	Codec Codec
	Err   error
}

func (e *CorruptStreamError) Error() string {
	return fmt.Sprintf("compression: corrupt %s stream: %v", e.Codec, e.Err)
}

func (e *CorruptStreamError) Unwrap() error {
	return e.Err
}

type resetWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// pooledWriter returns its encoder to the pool on Close.
type pooledWriter struct {
	w    resetWriter
	pool *sync.Pool
}

func (p *pooledWriter) Write(b []byte) (int, error) {
	if p.w == nil {
		return 0, ErrWriterClosed
	}
	return p.w.Write(b)
}

func (p *pooledWriter) Close() error {
	if p.w == nil {
		return nil
	}
	err := p.w.Close()
	p.pool.Put(p.w)
	p.w = nil
	return err
}
