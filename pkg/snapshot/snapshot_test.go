package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := rf1a.TinyOSDefault()
	require.NoError(t, cfg.Set("channr", 0x05))

	snap := New("radio.h", "header", cfg)
	assert.NotEqual(t, uuid.Nil, snap.ID)
	assert.WithinDuration(t, time.Now(), snap.Created, time.Minute)

	data, err := Encode(snap)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, decoded.ID)
	assert.Equal(t, "radio.h", decoded.Source)
	assert.Equal(t, "header", decoded.Format)
	assert.True(t, snap.Created.Equal(decoded.Created))

	got, err := decoded.Config()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEncodeIsDeterministic(t *testing.T) {
	snap := New("a", "hex", rf1a.PowerUp())
	a, err := Encode(snap)
	require.NoError(t, err)
	b, err := Encode(snap)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeUsesIntegerKeys(t *testing.T) {
	data, err := Encode(New("a", "hex", rf1a.PowerUp()))
	require.NoError(t, err)

	var raw map[int]any
	require.NoError(t, cbor.Unmarshal(data, &raw))
	assert.Contains(t, raw, 1)
	assert.Contains(t, raw, 5)
	assert.Len(t, raw[5], rf1a.RecordLength)
}

func TestDecodeRejectsShortRecord(t *testing.T) {
	snap := New("a", "hex", rf1a.PowerUp())
	snap.Registers = snap.Registers[:rf1a.RecordLength-1]
	data, err := Encode(snap)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, rf1a.ErrLength)
}

func TestDecodeRejectsLongRecord(t *testing.T) {
	snap := New("a", "hex", rf1a.PowerUp())
	snap.Registers = append(snap.Registers, 0xDE, 0xAD)
	data, err := Encode(snap)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, rf1a.ErrLength)
	assert.ErrorContains(t, err, "got 60 register bytes")

	_, err = snap.Config()
	assert.ErrorIs(t, err, rf1a.ErrLength)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte{0xFF, 0x00})
	assert.ErrorContains(t, err, "failed to decode snapshot")
}

func TestWriteReadFile(t *testing.T) {
	snap := New("x.yaml", "yaml", rf1a.PowerUp())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	path := filepath.Join(t.TempDir(), "x"+Extension)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.rfs"))
	assert.ErrorContains(t, err, "failed to read file")
}
