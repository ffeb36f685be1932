package smartrf

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel matched by every *ParseError.
var ErrParse = errors.New("malformed setting")

// ParseError reports a candidate setting that could not be split into a
// name and a value, or whose value is not an integer literal.
type ParseError struct {
	// Line is the 1-based source line.
	Line int

	// Text is the offending line, trimmed.
	Text string

	// Reason describes what is wrong.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %v: %s", e.Line, ErrParse, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

// Unwrap returns ErrParse and the underlying error.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}
