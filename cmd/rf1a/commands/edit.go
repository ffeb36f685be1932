package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/mash-protocol/rf1a-go/cmd/rf1a/interactive"
	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

// EditOptions configures the edit command.
type EditOptions struct {
	LoadOptions
	XOSC float64
	File string
}

// RunEdit runs the interactive editor on one configuration.
func RunEdit(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseEditArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printEditUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printEditUsage(stderr)
		return exitCommandError
	}

	ld := newLoader(opts.LoadOptions, stderr)
	prof, err := ld.load(opts.File)
	if err != nil {
		return fail(stderr, err)
	}

	ed := interactive.New(prof, opts.XOSC, stdout)
	if err := ed.Run(io.NopCloser(stdin)); err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

func parseEditArgs(args []string) (EditOptions, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := EditOptions{}

	fs.Float64Var(&opts.XOSC, "xosc", rf1a.XOSC, "Crystal frequency in Hz")
	opts.LoadOptions.register(fs)

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return opts, errors.New("expected exactly one file")
	}
	opts.File = remaining[0]

	return opts, nil
}

func printEditUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: rf1a edit [options] <file>

Options:
  --xosc          Crystal frequency in Hz [default: 26000000]
  --input         Input format (auto, header, yaml, hex) [default: auto]
  --lenient       Skip malformed setting lines instead of failing
  --patable       Apply PA_TABLE definitions to patable0..7
  --baseline      Baseline settings are applied to (powerup, tinyos)
  -v, --verbose   Log every applied setting to stderr

Examples:
  rf1a edit radio.h
  rf1a edit --baseline tinyos overrides.yaml`)
}
