// Package commands implements the rf1a subcommands.
package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mash-protocol/rf1a-go/pkg/log"
	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
	"github.com/mash-protocol/rf1a-go/pkg/smartrf"
	"github.com/mash-protocol/rf1a-go/pkg/snapshot"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitDifferent    = 3
)

// LogLevelEnv overrides the log level when -v is not given.
const LogLevelEnv = "RF1A_LOG_LEVEL"

// LoadOptions are the flags shared by every command that reads a
// configuration source.
type LoadOptions struct {
	Format   string
	Lenient  bool
	PATable  bool
	Baseline string
	Verbose  bool
}

func (o *LoadOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.Format, "input", "auto", "Input format (auto, header, yaml, hex)")
	fs.BoolVar(&o.Lenient, "lenient", false, "Skip malformed setting lines")
	fs.BoolVar(&o.PATable, "patable", false, "Apply PA_TABLE definitions")
	fs.StringVar(&o.Baseline, "baseline", "", "Baseline settings apply to (powerup, tinyos)")
	fs.BoolVar(&o.Verbose, "v", false, "Log every applied setting")
	fs.BoolVar(&o.Verbose, "verbose", false, "Log every applied setting")
}

// loader reads configuration sources for one command invocation.
type loader struct {
	opts   LoadOptions
	logger zerolog.Logger
	trace  *log.Recorder
}

func newLoader(opts LoadOptions, stderr io.Writer) *loader {
	return &loader{
		opts:   opts,
		logger: newLogger(stderr, opts.Verbose),
		trace:  log.NewRecorder(),
	}
}

// newLogger builds the diagnostic logger. Warnings only unless verbose or
// RF1A_LOG_LEVEL asks for more.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	} else if env := os.Getenv(LogLevelEnv); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(level).
		With().
		Str("component", "loader").
		Logger()
}

// load reads one configuration source. Snapshots are recognised by their
// extension; everything else goes through the smartrf parser.
func (l *loader) load(path string) (*smartrf.Profile, error) {
	if strings.EqualFold(filepath.Ext(path), snapshot.Extension) {
		return l.loadSnapshot(path)
	}

	format, err := smartrf.ParseFormat(l.opts.Format)
	if err != nil {
		return nil, err
	}
	opts := smartrf.Options{
		Format:  format,
		Lenient: l.opts.Lenient,
		PATable: l.opts.PATable,
		Logger:  log.NewMultiLogger(log.NewZerologAdapter(l.logger), l.trace),
	}
	if l.opts.Baseline != "" {
		base, err := rf1a.Baseline(l.opts.Baseline)
		if err != nil {
			return nil, err
		}
		opts.Baseline = &base
	}

	prof, err := smartrf.NewParser(opts).ParseFile(path)
	if err != nil {
		return nil, err
	}
	if l.opts.Baseline != "" {
		prof.Baseline = strings.ToLower(l.opts.Baseline)
	}
	l.logger.Debug().
		Str("source", path).
		Str("format", prof.Format.String()).
		Int("assigned", len(prof.Assigned)).
		Msg("loaded")
	return prof, nil
}

func (l *loader) loadSnapshot(path string) (*smartrf.Profile, error) {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg, err := snap.Config()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug().
		Str("source", path).
		Str("id", snap.ID.String()).
		Str("origin", snap.Source).
		Msg("loaded snapshot")
	return &smartrf.Profile{
		Config:     cfg,
		Format:     smartrf.FormatHex,
		SourceFile: path,
		Label:      snap.Source,
	}, nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCommandError
}
