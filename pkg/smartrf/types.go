package smartrf

import (
	"fmt"

	"github.com/mash-protocol/rf1a-go/pkg/log"
	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

// Format identifies the syntax of a configuration source.
type Format int

const (
	// FormatAuto detects the format from the content.
	FormatAuto Format = iota
	// FormatHeader is a SmartRF Studio C header (#define SMARTRF_SETTING_...).
	FormatHeader
	// FormatYAML is a YAML register profile.
	FormatYAML
	// FormatHex is a bare canonical hex record.
	FormatHex
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatHeader:
		return "header"
	case FormatYAML:
		return "yaml"
	case FormatHex:
		return "hex"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// ParseFormat resolves a format name as accepted by String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "header", "h":
		return FormatHeader, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hex":
		return FormatHex, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q", s)
	}
}

// Options configures parsing.
type Options struct {
	// Format specifies the input format. Use FormatAuto to auto-detect.
	Format Format

	// Lenient skips malformed setting lines instead of failing.
	// Unknown register names are errors in either mode.
	Lenient bool

	// PATable applies "#define PA_TABLE {...}" to patable0..patable7.
	PATable bool

	// Baseline is the record settings are applied to. Nil selects
	// rf1a.PowerUp, unless a YAML profile names its own baseline.
	Baseline *rf1a.Config

	// Logger receives a trace of every applied or skipped setting.
	Logger log.Logger
}

// Assignment is one setting applied to the record.
type Assignment struct {
	// Field is the canonical register name written.
	Field string `json:"field" yaml:"field"`

	// Value is the byte written.
	Value uint8 `json:"value" yaml:"value"`

	// Line is the 1-based source line.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Raw is the setting name as spelled in the source.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Profile is a parsed configuration source.
type Profile struct {
	// Config is the resulting register record.
	Config rf1a.Config

	// Format is the syntax the source was parsed as.
	Format Format

	// SourceFile is the path the source was read from, if any.
	SourceFile string

	// Label is the profile's self-declared name (YAML "source:"), if any.
	Label string

	// Baseline names the baseline the settings were applied to, if known.
	Baseline string

	// Assigned lists applied settings in source order. A register
	// assigned twice appears twice; the later value wins.
	Assigned []Assignment
}

// Name returns the best human-readable name for the profile.
func (p *Profile) Name() string {
	switch {
	case p.SourceFile != "":
		return p.SourceFile
	case p.Label != "":
		return p.Label
	default:
		return "-"
	}
}
