// Package progress turns per-record ticks into console feedback.
package progress

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Reporter receives the running count of written records.
type Reporter interface {
	Update(written int64)
	Finish()
}

// Nop ignores all updates.
type Nop struct{}

func (Nop) Update(int64) {}
func (Nop) Finish()      {}

// Log emits one log line every Every records, like the original
// "written X of Y records" output.
type Log struct {
	logger zerolog.Logger
	total  int64
	every  int64
}

// NewLog returns a Log reporter. every must be positive.
func NewLog(logger zerolog.Logger, total, every int64) *Log {
	return &Log{logger: logger, total: total, every: every}
}

func (l *Log) Update(written int64) {
	if written%l.every != 0 {
		return
	}
	l.logger.Info().
		Int64("written", written).
		Int64("total", l.total).
		Msgf("written %s of %s records", humanize.Comma(written), humanize.Comma(l.total))
}

func (l *Log) Finish() {}

// barSteps bounds how often the bar is redrawn regardless of the record count.
const barSteps = 1000

// Bar draws an interactive progress bar.
type Bar struct {
	bar   *progressbar.ProgressBar
	total int64
	step  int64
}

// NewBar returns a Bar for total records drawing to w.
func NewBar(w io.Writer, total int64) *Bar {
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rec"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { io.WriteString(w, "\n") }),
	)
	return &Bar{bar: bar, total: total, step: max(total/barSteps, 1)}
}

func (b *Bar) Update(written int64) {
	if written%b.step == 0 || written == b.total {
		b.bar.Set64(written)
	}
}

func (b *Bar) Finish() {
	b.bar.Finish()
}
