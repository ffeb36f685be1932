package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

// DiffOptions configures the diff command.
type DiffOptions struct {
	LoadOptions
	Format   string // text, json, yaml
	ExitCode bool
	A, B     string
}

// DiffOutput is the machine-readable diff report.
type DiffOutput struct {
	A       string         `json:"a" yaml:"a"`
	B       string         `json:"b" yaml:"b"`
	LabelA  string         `json:"label_a" yaml:"label_a"`
	LabelB  string         `json:"label_b" yaml:"label_b"`
	Changes []ChangeOutput `json:"changes" yaml:"changes"`
}

// ChangeOutput is one differing field.
type ChangeOutput struct {
	Field string `json:"field" yaml:"field"`
	A     string `json:"a" yaml:"a"`
	B     string `json:"b" yaml:"b"`
}

// RunDiff runs the diff command.
func RunDiff(args []string, stdout, stderr io.Writer) int {
	opts, err := parseDiffArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDiffUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printDiffUsage(stderr)
		return exitCommandError
	}

	ld := newLoader(opts.LoadOptions, stderr)
	a, err := ld.load(opts.A)
	if err != nil {
		return fail(stderr, err)
	}
	b, err := ld.load(opts.B)
	if err != nil {
		return fail(stderr, err)
	}

	labelA, labelB := maskLabels(opts.A, opts.B)
	output := DiffOutput{A: opts.A, B: opts.B, LabelA: labelA, LabelB: labelB, Changes: []ChangeOutput{}}
	for d := range rf1a.Diff(a.Config, b.Config) {
		output.Changes = append(output.Changes, ChangeOutput{
			Field: d.Name,
			A:     fmt.Sprintf("%02X", d.A),
			B:     fmt.Sprintf("%02X", d.B),
		})
	}

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, _ := yaml.Marshal(output)
		fmt.Fprint(stdout, string(data))
	default:
		printDiffText(stdout, output)
	}

	if opts.ExitCode && len(output.Changes) > 0 {
		return exitDifferent
	}
	return exitSuccess
}

func printDiffText(w io.Writer, output DiffOutput) {
	fmt.Fprintf(w, "Field: %s %s\n", output.LabelA, output.LabelB)
	for _, c := range output.Changes {
		fmt.Fprintf(w, "%-15s: %s %s\n", strings.ToUpper(c.Field), c.A, c.B)
	}
}

// maskLabels shortens two paths to the parts that tell them apart. Both
// are split on '_' and tokens equal at the same position become '*'.
// Tokens past the end of the shorter path are dropped.
func maskLabels(a, b string) (string, string) {
	ta := strings.Split(a, "_")
	tb := strings.Split(b, "_")
	n := min(len(ta), len(tb))

	la := make([]string, n)
	lb := make([]string, n)
	for i := range n {
		if ta[i] == tb[i] {
			la[i], lb[i] = "*", "*"
		} else {
			la[i], lb[i] = ta[i], tb[i]
		}
	}
	return strings.Join(la, "_"), strings.Join(lb, "_")
}

func parseDiffArgs(args []string) (DiffOptions, error) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := DiffOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	fs.BoolVar(&opts.ExitCode, "exit-code", false, "Exit with status 3 when the records differ")
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
	if len(remaining) != 2 {
		return opts, fmt.Errorf("expected two files, got %d", len(remaining))
	}
	opts.A, opts.B = remaining[0], remaining[1]

	return opts, nil
}

func printDiffUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: rf1a diff [options] <a> <b>

Prints every register whose value differs between two configurations.

Options:
  -f, --format    Output format (text, json, yaml) [default: text]
  --exit-code     Exit with status 3 when differences are found
  --input         Input format (auto, header, yaml, hex) [default: auto]
  --lenient       Skip malformed setting lines instead of failing
  --patable       Apply PA_TABLE definitions to patable0..7
  --baseline      Baseline settings are applied to (powerup, tinyos)
  -v, --verbose   Log every applied setting to stderr

Examples:
  rf1a diff radio_868_ch1.h radio_868_ch5.h
  rf1a diff --format json a.h b.yaml
  rf1a diff --exit-code expected.hex radio.h`)
}
