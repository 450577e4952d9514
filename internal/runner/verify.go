package runner

import (
	"context"
	"errors"
	"fmt"

	"pkg.jsn.cam/rodapgen/internal/compress"
	"pkg.jsn.cam/rodapgen/internal/history"
	"pkg.jsn.cam/rodapgen/internal/sink"
	"pkg.jsn.cam/rodapgen/internal/sum"
	"pkg.jsn.cam/rodapgen/pkg/rodap"
)

// ErrChecksumMismatch is returned by Verification.Err when the file or the
// regenerated stream differs from the recorded run.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Verification compares a recorded run with its file on disk and with a fresh
// regeneration from the recorded seed.
type Verification struct {
	Run         history.Run
	File        sink.Report
	Regenerated sum.Sum
}

// Err reports the first discrepancy, or nil if the run checks out.
func (v Verification) Err() error {
	if v.File.Records != v.Run.Records {
		return fmt.Errorf("%w: file has %d records, run recorded %d", ErrChecksumMismatch, v.File.Records, v.Run.Records)
	}
	recorded, err := sum.FromHex(v.Run.Checksum)
	if err != nil {
		return fmt.Errorf("run checksum %q: %w", v.Run.Checksum, err)
	}
	if v.File.Sum != recorded {
		return fmt.Errorf("%w: file %s, run recorded %s", ErrChecksumMismatch, v.File.Sum, recorded)
	}
	if v.Regenerated != v.File.Sum {
		return fmt.Errorf("%w: seed %d regenerates %s, file is %s", ErrChecksumMismatch, v.Run.Seed, v.Regenerated, v.File.Sum)
	}
	return nil
}

// Verify reads back the file of run, checks every record and regenerates the
// stream from the recorded seed without writing it anywhere.
func Verify(ctx context.Context, run history.Run) (Verification, error) {
	mode, err := compress.ParseMode(run.Compression)
	if err != nil {
		return Verification{}, err
	}

	report, err := sink.Inspect(run.Path, mode)
	if err != nil {
		return Verification{}, fmt.Errorf("reading %s: %w", run.Path, err)
	}

	src, err := rodap.NewSource(run.Source, run.Seed)
	if err != nil {
		return Verification{}, err
	}
	d := sink.Discard()
	if err := rodap.Generate(ctx, d, src, run.Records, nil); err != nil {
		return Verification{}, fmt.Errorf("regenerating: %w", err)
	}
	if err := d.Close(); err != nil {
		return Verification{}, err
	}

	return Verification{Run: run, File: report, Regenerated: d.Sum()}, nil
}
