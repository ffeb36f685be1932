package log

import (
	"fmt"
	"time"
)

// Event is one step of loading a configuration source.
type Event struct {
	// Time when the event occurred.
	Time time.Time `json:"time" yaml:"time"`

	// Source names the input (file path or "-").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Line is the 1-based source line, 0 if not line oriented.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Kind classifies the event.
	Kind Kind `json:"kind" yaml:"kind"`

	// Field is the canonical register name involved, if any.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Value is the value written (KindAssign, KindPATable).
	Value uint8 `json:"value" yaml:"value"`

	// Detail carries free text: the original name for KindAlias, the
	// reason for KindSkip.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Kind classifies load events.
type Kind uint8

const (
	// KindAssign indicates a register write.
	KindAssign Kind = 0
	// KindAlias indicates a setting name was remapped.
	KindAlias Kind = 1
	// KindSkip indicates an ignored candidate line.
	KindSkip Kind = 2
	// KindPATable indicates a PA table entry write.
	KindPATable Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAssign:
		return "ASSIGN"
	case KindAlias:
		return "ALIAS"
	case KindSkip:
		return "SKIP"
	case KindPATable:
		return "PATABLE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name as written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, c := range []Kind{KindAssign, KindAlias, KindSkip, KindPATable} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// String renders the event on one line.
func (e Event) String() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	switch e.Kind {
	case KindAssign, KindPATable:
		return fmt.Sprintf("%s %s %s = 0x%02X", loc, e.Kind, e.Field, e.Value)
	case KindAlias:
		return fmt.Sprintf("%s %s %s -> %s", loc, e.Kind, e.Detail, e.Field)
	default:
		return fmt.Sprintf("%s %s %s", loc, e.Kind, e.Detail)
	}
}
