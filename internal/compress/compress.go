// Package compress wraps output and input streams in the selected compression.
package compress

import (
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// Mode is the compression mode
type Mode uint8

// Data compression modes
const (
	None Mode = 1
	Zstd Mode = 2
)

// ParseMode converts a mode name to a Mode. The empty string means None.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none":
		return None, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("invalid compression mode %q. Must be one of: none, zstd", s)
	}
}

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// NewWriter returns a writer compressing into dst. Closing it finishes the
// compressed stream but does not close dst.
func (m Mode) NewWriter(dst io.Writer) io.WriteCloser {
	switch m {
	case None:
		return nopCloser{dst}
	case Zstd:
		return zstd.NewWriter(dst)
	default:
		panic("not implemented")
	}
}

// NewReader returns a reader decompressing src.
func (m Mode) NewReader(src io.Reader) io.ReadCloser {
	switch m {
	case None:
		return io.NopCloser(src)
	case Zstd:
		return zstd.NewReader(src)
	default:
		panic("not implemented")
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
