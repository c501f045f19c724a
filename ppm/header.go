package ppm

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Magic is the two-byte signature of a binary PPM file.
const Magic = "P6"

// MaxValue is the only maximum channel value this package accepts.
const MaxValue = 255

// Header errors
var (
	ErrInvalidMagic    = errors.New("ppm: not a binary PPM (P6) image")
	ErrInvalidMaxValue = errors.New("ppm: maximum color value must be 255")
	ErrInvalidHeader   = errors.New("ppm: malformed header")
	ErrTruncated       = errors.New("ppm: unexpected end of data")
)

// maxHeaderToken bounds a single numeric header token.
const maxHeaderToken = 10

// Header describes a P6 image as read from the file header.
type Header struct {
	Width  int
	Height int
	MaxVal int

	// Size is the number of header bytes, including the single whitespace
	// byte that separates the header from the raster.
	Size int
}

// PixelBytes returns the raster size in bytes.
func (h Header) PixelBytes() int {
	return h.Width * h.Height * 3
}

// HeaderError reports a header problem together with the byte offset at
// which it was detected.
type HeaderError struct {
	Offset int
	Err    error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%v (at header offset %d)", e.Err, e.Offset)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// headerScanner tokenizes a PPM header one byte at a time so that no raster
// bytes are consumed past the terminating whitespace.
type headerScanner struct {
	r   io.ByteReader
	off int
}

func (s *headerScanner) readByte() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, &HeaderError{Offset: s.off, Err: fmt.Errorf("%w in header", ErrTruncated)}
		}
		return 0, err
	}
	s.off++
	return c, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// token skips whitespace and comments and returns the next token. The byte
// that ended the token is consumed and must be whitespace.
func (s *headerScanner) token() (string, error) {
	var c byte
	var err error
	for {
		if c, err = s.readByte(); err != nil {
			return "", err
		}
		if c == '#' {
			for c != '\n' && c != '\r' {
				if c, err = s.readByte(); err != nil {
					return "", err
				}
			}
			continue
		}
		if !isSpace(c) {
			break
		}
	}

	buf := make([]byte, 0, maxHeaderToken)
	for !isSpace(c) {
		if c == '#' || len(buf) == maxHeaderToken {
			return "", s.errorf("unexpected %q in header", c)
		}
		buf = append(buf, c)
		if c, err = s.readByte(); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

func (s *headerScanner) number(name string) (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, s.errorf("invalid %s %q", name, tok)
	}
	return n, nil
}

func (s *headerScanner) errorf(format string, args ...any) error {
	return &HeaderError{Offset: s.off, Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidHeader}, args...)...)}
}

// ReadHeader parses a P6 header from r. Comment lines starting with '#' may
// appear anywhere between tokens. Exactly one whitespace byte after the
// maximum color value is consumed; r is left positioned at the first raster
// byte.
func ReadHeader(r io.ByteReader) (Header, error) {
	s := &headerScanner{r: r}

	magic, err := s.token()
	if err != nil {
		if errors.Is(err, ErrTruncated) && s.off == 0 {
			return Header{}, &HeaderError{Err: fmt.Errorf("%w: empty input", ErrInvalidMagic)}
		}
		if errors.Is(err, ErrInvalidHeader) {
			return Header{}, &HeaderError{Offset: s.off, Err: ErrInvalidMagic}
		}
		return Header{}, err
	}
	if magic != Magic {
		return Header{}, &HeaderError{Offset: 0, Err: fmt.Errorf("%w: magic %q", ErrInvalidMagic, magic)}
	}

	var h Header
	if h.Width, err = s.number("width"); err != nil {
		return Header{}, err
	}
	if h.Height, err = s.number("height"); err != nil {
		return Header{}, err
	}
	if err := checkDimensions(h.Width, h.Height); err != nil {
		return Header{}, &HeaderError{Offset: s.off, Err: err}
	}
	if h.MaxVal, err = s.number("maximum color value"); err != nil {
		return Header{}, err
	}
	if h.MaxVal != MaxValue {
		return Header{}, &HeaderError{Offset: s.off, Err: fmt.Errorf("%w: got %d", ErrInvalidMaxValue, h.MaxVal)}
	}
	h.Size = s.off
	return h, nil
}

// AppendHeader appends the canonical header for a width x height image.
func AppendHeader(dst []byte, width, height int) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, '\n')
	dst = strconv.AppendInt(dst, int64(width), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(height), 10)
	dst = append(dst, '\n')
	dst = strconv.AppendInt(dst, MaxValue, 10)
	return append(dst, '\n')
}
