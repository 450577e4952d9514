// Package config builds the generation request from command line flags and an
// optional TOML file. Precedence is defaults, then the file, then flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"pkg.jsn.cam/rodapgen/internal/compress"
	"pkg.jsn.cam/rodapgen/internal/log"
	"pkg.jsn.cam/rodapgen/pkg/quantity"
	"pkg.jsn.cam/rodapgen/pkg/rodap"
)

const (
	defaultBufferSize    = "1M"
	defaultProgressEvery = "1M"
	defaultProgress      = "log"
	defaultLogLevel      = "info"

	// maxBufferSize keeps the output buffer allocation sane.
	maxBufferSize = 1 << 30
)

// Progress styles.
const (
	ProgressLog = "log"
	ProgressBar = "bar"
)

// Usage is printed for -h and on argument errors.
const Usage = "Use: rodapgen [flags] <file> <count>"

// Config is a validated generation request.
type Config struct {
	Output string
	Count  int64

	Seed    int64
	SeedSet bool

	BufferSize    int
	Quiet         bool
	Source        string
	Compression   compress.Mode
	Progress      string
	ProgressEvery int64
	History       string

	LogLevel string
	Debug    bool
	Version  bool
}

// fileConfig mirrors the TOML layout. Quantities are strings so "5M" works.
type fileConfig struct {
	Generate *generateSection `toml:"generate"`
	Log      *logSection      `toml:"log"`
}

type generateSection struct {
	Output        string `toml:"output"`
	Count         string `toml:"count"`
	Seed          *int64 `toml:"seed"`
	BufferSize    string `toml:"buffer_size"`
	Quiet         *bool  `toml:"quiet"`
	Source        string `toml:"source"`
	Compress      string `toml:"compress"`
	Progress      string `toml:"progress"`
	ProgressEvery string `toml:"progress_every"`
	History       string `toml:"history"`
}

type logSection struct {
	Level string `toml:"level"`
	Debug *bool  `toml:"debug"`
}

// raw holds unresolved values while the layers are merged.
type raw struct {
	output, count, buffer, progressEvery string
	seed                                 *int64
	quiet, debug, version                bool
	source, compress, progress, history  string
	logLevel                             string
}

func defaults() raw {
	return raw{
		buffer:        defaultBufferSize,
		progressEvery: defaultProgressEvery,
		source:        rodap.DefaultSource,
		compress:      compress.None.String(),
		progress:      defaultProgress,
		logLevel:      defaultLogLevel,
	}
}

// Parse parses the generate command line. Flags may appear before, between or
// after the two positional arguments. It returns flag.ErrHelp for -h.
func Parse(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("rodapgen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, Usage)
		fs.PrintDefaults()
	}

	var f raw
	var seed int64
	var configPath string
	fs.StringVar(&configPath, "config", "", "TOML configuration file")
	fs.Int64Var(&seed, "seed", 0, "random seed (default: current time in milliseconds)")
	fs.StringVar(&f.buffer, "buffer", defaultBufferSize, "output buffer size, e.g. 64k or 1M")
	fs.BoolVar(&f.quiet, "quiet", false, "suppress progress and the final report")
	fs.Int64Var(&seed, "s", 0, "shorthand for -seed")
	fs.StringVar(&f.buffer, "b", defaultBufferSize, "shorthand for -buffer")
	fs.StringVar(&f.buffer, "bufferSize", defaultBufferSize, "alias for -buffer")
	fs.BoolVar(&f.quiet, "q", false, "shorthand for -quiet")
	fs.StringVar(&f.source, "source", rodap.DefaultSource, fmt.Sprintf("random source %v", rodap.SourceNames()))
	fs.StringVar(&f.compress, "compress", compress.None.String(), "output compression: none, zstd")
	fs.StringVar(&f.progress, "progress", defaultProgress, "progress style: log, bar")
	fs.StringVar(&f.progressEvery, "progress_every", defaultProgressEvery, "records between progress log lines")
	fs.StringVar(&f.history, "history", "", "record the run in this history database")
	fs.StringVar(&f.logLevel, "log_level", defaultLogLevel, "logging level: debug, info, warn, error")
	fs.BoolVar(&f.debug, "debug", false, "enable debug output")
	fs.BoolVar(&f.version, "version", false, "output version info and exit")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return Config{}, err
	}

	merged := defaults()
	if configPath != "" {
		file, err := readFile(configPath)
		if err != nil {
			return Config{}, err
		}
		merged.apply(file)
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed", "s":
			merged.seed = &seed
		case "buffer", "b", "bufferSize":
			merged.buffer = f.buffer
		case "quiet", "q":
			merged.quiet = f.quiet
		case "source":
			merged.source = f.source
		case "compress":
			merged.compress = f.compress
		case "progress":
			merged.progress = f.progress
		case "progress_every":
			merged.progressEvery = f.progressEvery
		case "history":
			merged.history = f.history
		case "log_level":
			merged.logLevel = f.logLevel
		case "debug":
			merged.debug = f.debug
		case "version":
			merged.version = f.version
		}
	})

	switch len(positional) {
	case 2:
		merged.count = positional[1]
		fallthrough
	case 1:
		merged.output = positional[0]
	case 0:
	default:
		return Config{}, fmt.Errorf("too many arguments\n%s", Usage)
	}

	cfg, err := merged.resolve()
	if err != nil {
		return Config{}, err
	}
	if cfg.Version {
		return cfg, nil
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseInterleaved lets flags follow positional arguments.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func readFile(path string) (fileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, fmt.Errorf("config file %s not found", path)
		}
		return fileConfig{}, err
	}

	var file fileConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fileConfig{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return file, nil
}

func (r *raw) apply(file fileConfig) {
	if g := file.Generate; g != nil {
		setString(&r.output, g.Output)
		setString(&r.count, g.Count)
		setString(&r.buffer, g.BufferSize)
		setString(&r.source, g.Source)
		setString(&r.compress, g.Compress)
		setString(&r.progress, g.Progress)
		setString(&r.progressEvery, g.ProgressEvery)
		setString(&r.history, g.History)
		if g.Seed != nil {
			r.seed = g.Seed
		}
		if g.Quiet != nil {
			r.quiet = *g.Quiet
		}
	}
	if l := file.Log; l != nil {
		setString(&r.logLevel, l.Level)
		if l.Debug != nil {
			r.debug = *l.Debug
		}
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (r raw) resolve() (Config, error) {
	cfg := Config{
		Output:   r.output,
		Quiet:    r.quiet,
		Source:   r.source,
		Progress: r.progress,
		History:  r.history,
		LogLevel: r.logLevel,
		Debug:    r.debug,
		Version:  r.version,
	}
	if cfg.Version {
		return cfg, nil
	}

	if r.seed != nil {
		cfg.Seed, cfg.SeedSet = *r.seed, true
	}

	var err error
	if r.output == "" {
		return Config{}, fmt.Errorf("missing <file> argument\n%s", Usage)
	}
	if r.count == "" {
		return Config{}, fmt.Errorf("missing <count> argument\n%s", Usage)
	}
	if cfg.Count, err = parseQuantity("count", r.count); err != nil {
		return Config{}, err
	}
	buffer, err := parseQuantity("buffer_size", r.buffer)
	if err != nil {
		return Config{}, err
	}
	if buffer <= 0 || buffer > maxBufferSize {
		return Config{}, fmt.Errorf("field %q must be in range 1 to %s", "buffer_size", quantity.Format(maxBufferSize))
	}
	cfg.BufferSize = int(buffer)
	if cfg.ProgressEvery, err = parseQuantity("progress_every", r.progressEvery); err != nil {
		return Config{}, err
	}
	if cfg.Compression, err = compress.ParseMode(r.compress); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseQuantity(field, s string) (int64, error) {
	n, err := quantity.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", field, err)
	}
	return n, nil
}

func (c *Config) setDefaults() {
	if !c.SeedSet {
		c.Seed = time.Now().UnixMilli()
	}
}

func (c Config) validate() error {
	if c.Count < 0 {
		return fmt.Errorf("field %q must not be negative", "count")
	}
	if _, ok := rodap.Sources[c.Source]; !ok {
		return fmt.Errorf("invalid -source %q. Must be one of: %v", c.Source, rodap.SourceNames())
	}
	if c.Progress != ProgressLog && c.Progress != ProgressBar {
		return fmt.Errorf("invalid -progress %q. Must be one of: log, bar", c.Progress)
	}
	if c.ProgressEvery <= 0 {
		return fmt.Errorf("field %q must be positive", "progress_every")
	}
	if !slices.Contains(log.Levels, c.LogLevel) {
		return fmt.Errorf("invalid -log_level %q. Must be one of: debug, info, warn, error", c.LogLevel)
	}
	return nil
}
