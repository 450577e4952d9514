// Package sink provides the buffered output stream records are written to.
// Every byte is hashed before compression, so the checksum identifies the
// record stream regardless of how it is stored.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"pkg.jsn.cam/rodapgen/internal/compress"
	"pkg.jsn.cam/rodapgen/internal/sum"
)

// DefaultBufferSize matches the original tool's output buffer.
const DefaultBufferSize = 1024 * 1024

// Options configures a Sink.
type Options struct {
	BufferSize  int
	Compression compress.Mode
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.Compression == 0 {
		o.Compression = compress.None
	}
	return o
}

// Sink is a buffered, checksummed and optionally compressed writer.
type Sink struct {
	buf     *bufio.Writer
	hash    *sum.Hash
	enc     io.WriteCloser
	dst     io.Closer
	written int64
}

// Create creates or truncates the file at path and returns a Sink writing to it.
func Create(path string, opts Options) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return newSink(f, f, opts), nil
}

// New returns a Sink writing to w. Closing the Sink does not close w.
func New(w io.Writer, opts Options) *Sink {
	return newSink(w, nil, opts)
}

// Discard returns a Sink that only computes the checksum.
func Discard() *Sink {
	return New(io.Discard, Options{BufferSize: 64 * 1024})
}

func newSink(w io.Writer, dst io.Closer, opts Options) *Sink {
	opts = opts.withDefaults()
	s := &Sink{
		hash: sum.New(),
		enc:  opts.Compression.NewWriter(w),
		dst:  dst,
	}
	s.buf = bufio.NewWriterSize(io.MultiWriter(s.hash, s.enc), opts.BufferSize)
	return s
}

func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.buf.Write(p)
	s.written += int64(n)
	return n, err
}

// Flush writes any buffered data through to the underlying stream.
func (s *Sink) Flush() error {
	return s.buf.Flush()
}

// Written returns the number of uncompressed bytes accepted so far.
func (s *Sink) Written() int64 {
	return s.written
}

// Sum returns the checksum of the bytes flushed so far.
func (s *Sink) Sum() sum.Sum {
	return s.hash.Sum()
}

// Close flushes the buffer, finishes the compressed stream and closes the
// underlying file, if any. All three steps run even if one fails.
func (s *Sink) Close() error {
	var errs []error
	if err := s.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}
	if err := s.enc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finish compression: %w", err))
	}
	if s.dst != nil {
		if err := s.dst.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close: %w", err))
		}
	}
	return errors.Join(errs...)
}
