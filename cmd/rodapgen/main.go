// rodapgen generates deterministic files of fixed-width person records for
// testing and benchmarks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pkg.jsn.cam/rodapgen/internal/config"
	"pkg.jsn.cam/rodapgen/internal/history"
	"pkg.jsn.cam/rodapgen/internal/log"
	"pkg.jsn.cam/rodapgen/internal/runner"
)

// Build flags
var (
	Version   string
	BuildDate string
	CommitID  string
)

const defaultHistory = "rodapgen.db"

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "history":
			return runHistory(args[1:], stdout, stderr)
		case "verify":
			return runVerify(ctx, args[1:], stdout, stderr)
		}
	}
	return runGenerate(ctx, args, stdout, stderr)
}

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.Version {
		format := "%-10s:  %s\n"
		fmt.Fprintf(stdout, format, "Version", Version)
		fmt.Fprintf(stdout, format, "Build date", BuildDate)
		fmt.Fprintf(stdout, format, "Commit ID", CommitID)
		return nil
	}

	logger := log.New(stderr, cfg.LogLevel, cfg.Debug)

	opts := runner.Options{Logger: logger, Progress: stderr}
	if cfg.History != "" {
		store, err := history.Open(cfg.History)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		defer log.OnError(logger, store.Close)
		opts.History = store
	}

	result, err := runner.Generate(ctx, cfg, opts)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintln(stdout, runner.Report(result))
		if result.ID != "" {
			fmt.Fprintf(stdout, "Run ID: %s\n", result.ID)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
