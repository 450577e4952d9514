// Package runner composes the configuration, sink, progress reporting and run
// history around rodap.Generate.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"pkg.jsn.cam/rodapgen/internal/config"
	"pkg.jsn.cam/rodapgen/internal/history"
	"pkg.jsn.cam/rodapgen/internal/progress"
	"pkg.jsn.cam/rodapgen/internal/sink"
	"pkg.jsn.cam/rodapgen/pkg/quantity"
	"pkg.jsn.cam/rodapgen/pkg/rodap"
)

// Options carries the collaborators of a run.
type Options struct {
	Logger zerolog.Logger
	// Progress is where the progress bar is drawn.
	Progress io.Writer
	// History, if set, receives the manifest of a successful run.
	History *history.Store
}

// Generate writes cfg.Count records to cfg.Output and returns the manifest of
// the run. A partial file is left in place on failure.
func Generate(ctx context.Context, cfg config.Config, opts Options) (history.Run, error) {
	logger := opts.Logger
	src, err := rodap.NewSource(cfg.Source, cfg.Seed)
	if err != nil {
		return history.Run{}, err
	}

	out, err := sink.Create(cfg.Output, sink.Options{
		BufferSize:  cfg.BufferSize,
		Compression: cfg.Compression,
	})
	if err != nil {
		return history.Run{}, fmt.Errorf("%w: %w", rodap.ErrWrite, err)
	}

	logger.Debug().
		Str("output", cfg.Output).
		Int64("count", cfg.Count).
		Int64("seed", cfg.Seed).
		Str("source", cfg.Source).
		Str("compress", cfg.Compression.String()).
		Int("buffer", cfg.BufferSize).
		Msg("starting generation")

	reporter := newReporter(cfg, opts)
	start := time.Now()
	genErr := rodap.Generate(ctx, out, src, cfg.Count, reporter.Update)
	reporter.Finish()
	closeErr := out.Close()
	elapsed := time.Since(start)

	if genErr != nil {
		return history.Run{}, genErr
	}
	if closeErr != nil {
		return history.Run{}, fmt.Errorf("%w: %w", rodap.ErrWrite, closeErr)
	}

	info, err := os.Stat(cfg.Output)
	if err != nil {
		return history.Run{}, err
	}
	path, err := filepath.Abs(cfg.Output)
	if err != nil {
		path = cfg.Output
	}

	run := history.Run{
		Path:        path,
		Records:     cfg.Count,
		Seed:        cfg.Seed,
		Source:      cfg.Source,
		Compression: cfg.Compression.String(),
		BufferSize:  cfg.BufferSize,
		Size:        info.Size(),
		Checksum:    out.Sum().AsHex(),
		StartedAt:   start,
		Duration:    elapsed,
	}

	logger.Debug().
		Int64("bytes", out.Written()).
		Int64("size", run.Size).
		Str("checksum", run.Checksum).
		Dur("elapsed", elapsed).
		Msg("generation finished")

	if opts.History != nil {
		if err := opts.History.Add(&run); err != nil {
			return run, fmt.Errorf("recording run: %w", err)
		}
		logger.Debug().Str("id", run.ID).Msg("run recorded")
	}
	return run, nil
}

func newReporter(cfg config.Config, opts Options) progress.Reporter {
	switch {
	case cfg.Quiet:
		return progress.Nop{}
	case cfg.Progress == config.ProgressBar && opts.Progress != nil:
		return progress.NewBar(opts.Progress, cfg.Count)
	default:
		return progress.NewLog(opts.Logger, cfg.Count, cfg.ProgressEvery)
	}
}

// Report renders the summary line printed after a run.
func Report(run history.Run) string {
	return fmt.Sprintf("Generated file %s with %d records (%s) [using seed %d] in %d ms.",
		run.Path, run.Records, quantity.FormatBytes(run.Size), run.Seed, run.Duration.Milliseconds())
}
