package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mash-protocol/rf1a-go/pkg/smartrf"
	"github.com/mash-protocol/rf1a-go/pkg/snapshot"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	LoadOptions
	To     string // header, yaml, hex, cbor
	Output string // Empty means stdout
	Input  string
}

// RunConvert runs the convert command.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	opts, err := parseConvertArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printConvertUsage(stderr)
		return exitCommandError
	}

	ld := newLoader(opts.LoadOptions, stderr)
	prof, err := ld.load(opts.Input)
	if err != nil {
		return fail(stderr, err)
	}

	var buf bytes.Buffer
	if err := encodeProfile(&buf, prof, opts.To); err != nil {
		return fail(stderr, err)
	}

	if opts.Output == "" || opts.Output == "-" {
		_, _ = stdout.Write(buf.Bytes())
		return exitSuccess
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Converted %s -> %s\n", opts.Input, opts.Output)
	return exitSuccess
}

// encodeProfile writes prof in the named output format.
func encodeProfile(w io.Writer, prof *smartrf.Profile, to string) error {
	switch to {
	case "header":
		return smartrf.WriteHeader(w, prof.Config)
	case "yaml":
		return smartrf.WriteYAML(w, prof.Label, prof.Config)
	case "hex":
		return smartrf.WriteHex(w, prof.Config)
	case "cbor":
		return snapshot.Write(w, snapshot.New(prof.Name(), prof.Format.String(), prof.Config))
	default:
		return fmt.Errorf("unknown output format %q", to)
	}
}

func parseConvertArgs(args []string) (ConvertOptions, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ConvertOptions{}

	fs.StringVar(&opts.To, "to", "hex", "Output format (header, yaml, hex, cbor)")
	fs.StringVar(&opts.Output, "o", "", "Output file (default: stdout)")
	fs.StringVar(&opts.Output, "output", "", "Output file")
	opts.LoadOptions.register(fs)

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.To {
	case "header", "yaml", "hex", "cbor":
	default:
		return opts, fmt.Errorf("unknown output format %q", opts.To)
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return opts, errors.New("expected exactly one input file")
	}
	opts.Input = remaining[0]

	return opts, nil
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: rf1a convert [options] <input-file>

Options:
  --to            Output format (header, yaml, hex, cbor) [default: hex]
  -o, --output    Output file (default: stdout)
  --input         Input format (auto, header, yaml, hex) [default: auto]
  --lenient       Skip malformed setting lines instead of failing
  --patable       Apply PA_TABLE definitions to patable0..7
  --baseline      Baseline settings are applied to (powerup, tinyos)
  -v, --verbose   Log every applied setting to stderr

Examples:
  rf1a convert radio.h
  rf1a convert --to yaml -o radio.yaml radio.h
  rf1a convert --to cbor -o radio.rfs radio.h`)
}
