package rodap

import "errors"

var (
	// ErrWrite wraps any failure of the output sink.
	ErrWrite = errors.New("write failed")

	ErrUnknownSource = errors.New("unknown random source")
	ErrMalformed     = errors.New("malformed record")
)
