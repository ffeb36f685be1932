package rf1a

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Config is a decoded RF1A register record: one byte per entry of the
// field table, in layout order. The zero value is a record of all zeros.
//
// Config is a value type; copies are independent and == compares contents.
type Config struct {
	data [RecordLength]byte
}

// FromBytes decodes the first RecordLength bytes of b.
func FromBytes(b []byte) (Config, error) {
	var c Config
	if len(b) < RecordLength {
		return c, &LengthError{Got: len(b), Want: RecordLength}
	}
	copy(c.data[:], b[:RecordLength])
	return c, nil
}

// Extract decodes a Config from the front of b and returns the bytes that
// follow it, so a record can be one segment of a larger buffer.
func Extract(b []byte) (Config, []byte, error) {
	c, err := FromBytes(b)
	if err != nil {
		return Config{}, b, err
	}
	return c, b[RecordLength:], nil
}

// FromHexString decodes a HexLength-character hex string. Case is ignored.
func FromHexString(s string) (Config, error) {
	if len(s) != HexLength {
		return Config{}, &FormatError{Length: len(s)}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Config{}, &FormatError{Length: len(s), Err: err}
	}
	return FromBytes(b)
}

// MustFromHexString is like FromHexString but panics on error.
// It is intended for package-level baselines.
func MustFromHexString(s string) Config {
	c, err := FromHexString(s)
	if err != nil {
		panic(fmt.Sprintf("rf1a: %v", err))
	}
	return c
}

// Bytes returns the RecordLength-byte serialization.
func (c Config) Bytes() []byte {
	out := make([]byte, RecordLength)
	copy(out, c.data[:])
	return out
}

// Hex returns the upper-case hex serialization.
func (c Config) Hex() string {
	return strings.ToUpper(hex.EncodeToString(c.data[:]))
}

// Len returns the number of fields, which is always RecordLength.
func (c Config) Len() int {
	return len(c.data)
}

// At returns the value at layout position i.
func (c Config) At(i int) uint8 {
	return c.data[i]
}

// Get returns the value of the named field.
func (c Config) Get(name string) (uint8, error) {
	i, err := FieldIndex(name)
	if err != nil {
		return 0, err
	}
	return c.data[i], nil
}

// Set writes value into the named field. Other fields are unchanged.
func (c *Config) Set(name string, value int) error {
	i, err := FieldIndex(name)
	if err != nil {
		return err
	}
	if value < 0 || value > 0xFF {
		return &RangeError{Field: name, Value: value}
	}
	c.data[i] = byte(value)
	return nil
}

// PATable returns the 8-entry PA table.
func (c Config) PATable() [PATableLength]byte {
	var pa [PATableLength]byte
	copy(pa[:], c.data[BurstLength:BurstLength+PATableLength])
	return pa
}

// SetPATable overwrites the whole PA table.
func (c *Config) SetPATable(pa [PATableLength]byte) {
	copy(c.data[BurstLength:BurstLength+PATableLength], pa[:])
}

// Burst returns the registers covered by a burst read from address 0x00.
func (c Config) Burst() []byte {
	out := make([]byte, BurstLength)
	copy(out, c.data[:BurstLength])
	return out
}

// String renders one "name = 0xNN" line per field.
func (c Config) String() string {
	var sb strings.Builder
	for i, f := range fieldTable {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s = 0x%02x", f.Name, c.data[i])
	}
	return sb.String()
}

// MarshalText encodes the record as canonical hex.
func (c Config) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes canonical hex.
func (c *Config) UnmarshalText(text []byte) error {
	decoded, err := FromHexString(string(text))
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}
