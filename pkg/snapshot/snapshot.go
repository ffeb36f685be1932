// Package snapshot stores RF1A register records in a compact CBOR
// envelope, so a configuration captured from one tool can be loaded by
// another together with where it came from.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

// Extension is the file extension snapshots are written with.
const Extension = ".rfs"

// Snapshot is one register record with its provenance.
type Snapshot struct {
	// ID identifies the snapshot.
	ID uuid.UUID `cbor:"1,keyasint"`

	// Source names where the record was loaded from.
	Source string `cbor:"2,keyasint,omitempty"`

	// Format is the format the record was loaded from ("header", "yaml", ...).
	Format string `cbor:"3,keyasint,omitempty"`

	// Created is when the snapshot was taken.
	Created time.Time `cbor:"4,keyasint"`

	// Registers is the canonical record.
	Registers []byte `cbor:"5,keyasint"`
}

// encMode is the CBOR encoder mode for snapshots.
// Deterministic so the same snapshot always encodes to the same bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for snapshots.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// New takes a snapshot of cfg with a fresh ID.
func New(source, format string, cfg rf1a.Config) Snapshot {
	return Snapshot{
		ID:        uuid.New(),
		Source:    source,
		Format:    format,
		Created:   time.Now().UTC(),
		Registers: cfg.Bytes(),
	}
}

// Config returns the record the snapshot holds. The register bytes must be
// exactly one record long.
func (s Snapshot) Config() (rf1a.Config, error) {
	if len(s.Registers) > rf1a.RecordLength {
		return rf1a.Config{}, fmt.Errorf("snapshot %s: %w: got %d register bytes, want %d",
			s.ID, rf1a.ErrLength, len(s.Registers), rf1a.RecordLength)
	}
	cfg, err := rf1a.FromBytes(s.Registers)
	if err != nil {
		return rf1a.Config{}, fmt.Errorf("snapshot %s: %w", s.ID, err)
	}
	return cfg, nil
}

// Encode encodes a snapshot to CBOR.
func Encode(s Snapshot) ([]byte, error) {
	return encMode.Marshal(s)
}

// Decode decodes a snapshot from CBOR and checks the record length.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := decMode.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if _, err := s.Config(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Write encodes s to w.
func Write(w io.Writer, s Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(data)
}
