package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/rf1a-go/pkg/log"
	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
	"github.com/mash-protocol/rf1a-go/pkg/smartrf"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	LoadOptions
	Format string // text, json, yaml
	Params bool
	Trace  bool
	XOSC   float64
	File   string
}

// ShowOutput represents a loaded configuration for display.
type ShowOutput struct {
	File      string        `json:"file" yaml:"file"`
	Format    string        `json:"format" yaml:"format"`
	Label     string        `json:"label,omitempty" yaml:"label,omitempty"`
	Baseline  string        `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Hex       string        `json:"hex" yaml:"hex"`
	Registers []FieldOutput `json:"registers" yaml:"registers"`
	Params    *rf1a.Params  `json:"params,omitempty" yaml:"params,omitempty"`
	Trace     []log.Event   `json:"trace,omitempty" yaml:"trace,omitempty"`
	Assigned  int           `json:"assigned" yaml:"assigned"`
}

// FieldOutput represents a single register.
type FieldOutput struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Value   string `json:"value" yaml:"value"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printShowUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printShowUsage(stderr)
		return exitCommandError
	}

	ld := newLoader(opts.LoadOptions, stderr)
	prof, err := ld.load(opts.File)
	if err != nil {
		return fail(stderr, err)
	}

	output := buildShowOutput(prof, opts, ld.trace.Events())

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, _ := yaml.Marshal(output)
		fmt.Fprint(stdout, string(data))
	default:
		printShowText(stdout, prof, output)
	}

	return exitSuccess
}

func buildShowOutput(prof *smartrf.Profile, opts ShowOptions, trace []log.Event) ShowOutput {
	output := ShowOutput{
		File:     prof.Name(),
		Format:   prof.Format.String(),
		Label:    prof.Label,
		Baseline: prof.Baseline,
		Hex:      prof.Config.Hex(),
		Assigned: len(prof.Assigned),
	}

	for i, f := range rf1a.Fields() {
		fo := FieldOutput{Name: f.Name, Value: fmt.Sprintf("0x%02X", prof.Config.At(i))}
		if f.Address != rf1a.NoAddress {
			fo.Address = fmt.Sprintf("0x%02X", f.Address)
		}
		output.Registers = append(output.Registers, fo)
	}

	if opts.Params {
		p := prof.Config.Params(opts.XOSC)
		output.Params = &p
	}
	if opts.Trace {
		output.Trace = trace
	}
	return output
}

func printShowText(w io.Writer, prof *smartrf.Profile, output ShowOutput) {
	fmt.Fprintf(w, "File: %s\n", output.File)
	fmt.Fprintf(w, "Format: %s\n", output.Format)
	if output.Label != "" {
		fmt.Fprintf(w, "Label: %s\n", output.Label)
	}
	if output.Baseline != "" {
		fmt.Fprintf(w, "Baseline: %s\n", output.Baseline)
	}
	fmt.Fprintf(w, "Hex: %s\n", output.Hex)

	fmt.Fprintln(w, "\nRegisters:")
	fmt.Fprintln(w, prof.Config.String())

	if p := output.Params; p != nil {
		fmt.Fprintln(w, "\nRadio:")
		printParams(w, *p)
	}

	if len(output.Trace) > 0 {
		fmt.Fprintln(w, "\nTrace:")
		for _, e := range output.Trace {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d settings applied\n", output.Assigned)
}

func printParams(w io.Writer, p rf1a.Params) {
	fmt.Fprintf(w, "  Base frequency:    %.6f MHz\n", p.BaseFrequency/1e6)
	fmt.Fprintf(w, "  Carrier frequency: %.6f MHz\n", p.CarrierFrequency/1e6)
	fmt.Fprintf(w, "  Channel:           %d\n", p.Channel)
	fmt.Fprintf(w, "  Channel spacing:   %.6f kHz\n", p.ChannelSpacing/1e3)
	fmt.Fprintf(w, "  Data rate:         %.4f kBaud\n", p.DataRate/1e3)
	fmt.Fprintf(w, "  RX filter BW:      %.6f kHz\n", p.RXFilterBW/1e3)
	fmt.Fprintf(w, "  Deviation:         %.6f kHz\n", p.Deviation/1e3)
	fmt.Fprintf(w, "  Modulation:        %s\n", p.Modulation)
	fmt.Fprintf(w, "  Manchester:        %t\n", p.Manchester)
	fmt.Fprintf(w, "  Sync mode:         %s\n", p.SyncMode)
	fmt.Fprintf(w, "  Preamble:          %d bytes\n", p.Preamble)
	fmt.Fprintf(w, "  CRC:               %t\n", p.CRC)
	fmt.Fprintf(w, "  Length config:     %s\n", p.LengthConfig)
	fmt.Fprintf(w, "  Packet length:     %d\n", p.PacketLength)
	fmt.Fprintf(w, "  Address check:     %s\n", p.AddressCheck)
	fmt.Fprintf(w, "  Address:           %d\n", p.Address)
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	fs.BoolVar(&opts.Params, "params", false, "Show derived radio parameters")
	fs.BoolVar(&opts.Trace, "trace", false, "Show how each setting was applied")
	fs.Float64Var(&opts.XOSC, "xosc", rf1a.XOSC, "Crystal frequency in Hz")
	opts.LoadOptions.register(fs)

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.Format {
	case "text", "json", "yaml":
	default:
		return opts, fmt.Errorf("unknown output format %q", opts.Format)
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return opts, errors.New("expected exactly one file")
	}
	opts.File = remaining[0]

	return opts, nil
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: rf1a show [options] <file>

Options:
  -f, --format    Output format (text, json, yaml) [default: text]
  --params        Show derived radio parameters
  --trace         Show how each setting was applied
  --xosc          Crystal frequency in Hz [default: 26000000]
  --input         Input format (auto, header, yaml, hex) [default: auto]
  --lenient       Skip malformed setting lines instead of failing
  --patable       Apply PA_TABLE definitions to patable0..7
  --baseline      Baseline settings are applied to (powerup, tinyos)
  -v, --verbose   Log every applied setting to stderr

Examples:
  rf1a show radio.h
  rf1a show --params --format json radio.h
  rf1a show --trace --lenient legacy.h`)
}
