package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/rodapgen/internal/history"
	"pkg.jsn.cam/rodapgen/internal/runner"
	"pkg.jsn.cam/rodapgen/pkg/quantity"
)

func openHistory(name string, args []string, stderr io.Writer) (*history.Store, []string, error) {
	fs := flag.NewFlagSet("rodapgen "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("history", defaultHistory, "history database")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	store, err := history.Open(*path)
	if err != nil {
		return nil, nil, fmt.Errorf("history: %w", err)
	}
	return store, fs.Args(), nil
}

func runHistory(args []string, stdout, stderr io.Writer) error {
	store, _, err := openHistory("history", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs recorded")
		return nil
	}

	fmt.Fprintf(stdout, "%-36s %-10s %-10s %-20s %-8s %s\n", "RUN ID", "RECORDS", "SIZE", "SEED", "SOURCE", "STARTED")
	for _, r := range runs {
		fmt.Fprintf(stdout, "%-36s %-10s %-10s %-20d %-8s %s\n",
			r.ID,
			quantity.Format(r.Records),
			quantity.FormatBytes(r.Size),
			r.Seed,
			r.Source,
			humanize.Time(r.StartedAt))
	}
	return nil
}

func runVerify(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	store, rest, err := openHistory("verify", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	defer store.Close()

	if len(rest) != 1 {
		return errors.New("Use: rodapgen verify [-history <file>] <run-id>")
	}
	r, err := store.Get(rest[0])
	if err != nil {
		return err
	}

	v, err := runner.Verify(ctx, r)
	if err != nil {
		return err
	}
	if err := v.Err(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "OK %s: %d records, checksum %s\n", r.Path, v.File.Records, r.Checksum)
	return nil
}
