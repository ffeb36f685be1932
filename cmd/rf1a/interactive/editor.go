// Package interactive provides the interactive register editor of the
// rf1a tool.
package interactive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
	"github.com/mash-protocol/rf1a-go/pkg/smartrf"
	"github.com/mash-protocol/rf1a-go/pkg/snapshot"
)

// Editor edits one register record. Changes are tracked against the
// record as loaded, so "diff" and "reset" always refer to the source.
type Editor struct {
	name     string
	label    string
	original rf1a.Config
	cfg      rf1a.Config
	xosc     float64
	out      io.Writer
}

// New creates an editor for a loaded profile. Output goes to out.
func New(prof *smartrf.Profile, xosc float64, out io.Writer) *Editor {
	return &Editor{
		name:     prof.Name(),
		label:    prof.Label,
		original: prof.Config,
		cfg:      prof.Config,
		xosc:     xosc,
		out:      out,
	}
}

// Config returns the record as currently edited.
func (e *Editor) Config() rf1a.Config {
	return e.cfg
}

// Run reads commands from in until "quit" or end of input.
func (e *Editor) Run(in io.ReadCloser) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rf1a> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           in,
		Stdout:          e.out,
		AutoComplete:    e.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	// Keep output in step with the prompt.
	e.out = rl.Stdout()
	e.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}
		if quit := e.Exec(line); quit {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the session should end.
func (e *Editor) Exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		e.printHelp()
	case "get", "g":
		e.cmdGet(args)
	case "set", "s":
		e.cmdSet(args)
	case "diff", "d":
		e.cmdDiff()
	case "hex":
		fmt.Fprintln(e.out, e.cfg.Hex())
	case "show":
		fmt.Fprintln(e.out, e.cfg.String())
	case "params", "p":
		e.cmdParams()
	case "reset":
		e.cmdReset(args)
	case "save":
		e.cmdSave(args)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(e.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (e *Editor) cmdGet(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(e.out, "Usage: get <field> [field...]")
		return
	}
	for _, arg := range args {
		name, _ := smartrf.CanonicalName(arg)
		v, err := e.cfg.Get(name)
		if err != nil {
			fmt.Fprintf(e.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(e.out, "%s = 0x%02X\n", name, v)
	}
}

func (e *Editor) cmdSet(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(e.out, "Usage: set <field> <value>")
		return
	}
	name, _ := smartrf.CanonicalName(args[0])
	value, err := strconv.ParseInt(args[1], 0, strconv.IntSize)
	if err != nil {
		fmt.Fprintf(e.out, "Error: invalid value %q\n", args[1])
		return
	}
	if err := e.cfg.Set(name, int(value)); err != nil {
		fmt.Fprintf(e.out, "Error: %v\n", err)
		return
	}
	f, _ := rf1a.FieldByName(name)
	if f.Access != rf1a.AccessNormal {
		fmt.Fprintf(e.out, "Warning: %s is not a normal configuration register\n", name)
	}
	fmt.Fprintf(e.out, "%s = 0x%02X\n", name, value)
}

func (e *Editor) cmdDiff() {
	n := 0
	for d := range rf1a.Diff(e.original, e.cfg) {
		fmt.Fprintf(e.out, "%-15s: %02X %02X\n", strings.ToUpper(d.Name), d.A, d.B)
		n++
	}
	if n == 0 {
		fmt.Fprintln(e.out, "No changes")
	}
}

func (e *Editor) cmdParams() {
	p := e.cfg.Params(e.xosc)
	fmt.Fprintf(e.out, "Carrier: %.6f MHz (base %.6f MHz, channel %d)\n",
		p.CarrierFrequency/1e6, p.BaseFrequency/1e6, p.Channel)
	fmt.Fprintf(e.out, "Data rate: %.4f kBaud, %s, deviation %.6f kHz\n",
		p.DataRate/1e3, p.Modulation, p.Deviation/1e3)
	fmt.Fprintf(e.out, "RX filter BW: %.6f kHz\n", p.RXFilterBW/1e3)
}

func (e *Editor) cmdReset(args []string) {
	if len(args) == 0 {
		e.cfg = e.original
		fmt.Fprintln(e.out, "Reset all fields")
		return
	}
	for _, arg := range args {
		name, _ := smartrf.CanonicalName(arg)
		v, err := e.original.Get(name)
		if err != nil {
			fmt.Fprintf(e.out, "Error: %v\n", err)
			continue
		}
		if err := e.cfg.Set(name, int(v)); err != nil {
			fmt.Fprintf(e.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(e.out, "%s = 0x%02X\n", name, v)
	}
}

// cmdSave writes the record in the format the file extension implies:
// .yaml/.yml, .hex, .rfs, anything else a header.
func (e *Editor) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "Usage: save <file>")
		return
	}
	path := args[0]

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(e.out, "Error: %v\n", err)
		return
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = smartrf.WriteYAML(f, e.label, e.cfg)
	case ".hex":
		err = smartrf.WriteHex(f, e.cfg)
	case snapshot.Extension:
		err = snapshot.Write(f, snapshot.New(e.name, "edit", e.cfg))
	default:
		err = smartrf.WriteHeader(f, e.cfg)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(e.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(e.out, "Saved %s\n", path)
}

func (e *Editor) completer() *readline.PrefixCompleter {
	fields := func(string) []string { return rf1a.FieldNames() }
	return readline.NewPrefixCompleter(
		readline.PcItem("get", readline.PcItemDynamic(fields)),
		readline.PcItem("set", readline.PcItemDynamic(fields)),
		readline.PcItem("reset", readline.PcItemDynamic(fields)),
		readline.PcItem("diff"),
		readline.PcItem("hex"),
		readline.PcItem("show"),
		readline.PcItem("params"),
		readline.PcItem("save"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

func (e *Editor) printHelp() {
	fmt.Fprintf(e.out, `Editing %s

Commands:
  get <field>...          Show field values
  set <field> <value>     Write a field (0x.. hex, 0.. octal, decimal)
  diff                    Fields changed since loading
  hex                     Canonical hex record
  show                    Every field
  params                  Derived radio parameters
  reset [field...]        Restore fields (all if none given)
  save <file>             Write .h, .yaml, .hex or .rfs
  help                    This help
  quit                    Leave the editor

`, e.name)
}
