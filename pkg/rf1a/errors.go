package rf1a

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	ErrLength       = errors.New("record too short")
	ErrFormat       = errors.New("invalid hex record")
	ErrUnknownField = errors.New("unknown field")
	ErrRange        = errors.New("value out of range")
)

// LengthError is returned when a byte buffer is shorter than RecordLength.
type LengthError struct {
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%v: got %d bytes, need %d", ErrLength, e.Got, e.Want)
}

// Unwrap returns ErrLength.
func (e *LengthError) Unwrap() error { return ErrLength }

// FormatError is returned when a hex string cannot be decoded into a record.
type FormatError struct {
	// Length is the length of the rejected input.
	Length int

	// Err is the underlying decode error, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", ErrFormat, e.Err)
	}
	return fmt.Sprintf("%v: got %d characters, need %d", ErrFormat, e.Length, HexLength)
}

// Unwrap returns ErrFormat and the decode error.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// UnknownFieldError is returned for a name that is not in the field table.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownField, e.Name)
}

// Unwrap returns ErrUnknownField.
func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// RangeError is returned when a field write does not fit in a byte.
type RangeError struct {
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %s = %d (must be 0-255)", ErrRange, e.Field, e.Value)
}

// Unwrap returns ErrRange.
func (e *RangeError) Unwrap() error { return ErrRange }
