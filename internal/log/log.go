// Package log configures the zerolog logger used by the CLI.
package log

import (
	"io"

	"github.com/rs/zerolog"
)

// Levels accepted by ParseLevel.
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel maps a level name to a zerolog level. The second result is false
// for unknown names, in which case InfoLevel is returned.
func ParseLevel(s string) (zerolog.Level, bool) {
	switch s {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// New returns a timestamped logger writing to w. Debug mode switches to the
// human readable console writer at debug level.
func New(w io.Writer, level string, debug bool) zerolog.Logger {
	if debug {
		console := zerolog.ConsoleWriter{Out: w}
		return zerolog.New(console).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	lvl, _ := ParseLevel(level)
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

// OnError calls the function f, and if it's not nil, logs the error returned.
func OnError(logger zerolog.Logger, f func() error) {
	if err := f(); err != nil {
		logger.Error().Err(err).Msg("")
	}
}
