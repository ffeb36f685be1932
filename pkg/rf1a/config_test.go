package rf1a

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTableLayout(t *testing.T) {
	fields := Fields()
	require.Len(t, fields, RecordLength)
	assert.Equal(t, 58, RecordLength)
	assert.Equal(t, 116, HexLength)

	assert.Equal(t, "iocfg2", fields[0].Name)
	assert.Equal(t, "test0", fields[BurstLength-1].Name)
	assert.Equal(t, "fscal0", fields[BurstWriteLength-1].Name)
	assert.Equal(t, "patable0", fields[BurstLength].Name)
	assert.Equal(t, "patable7", fields[BurstLength+PATableLength-1].Name)
	assert.Equal(t, []string{"partnum", "version", "_padding"}, FieldNames()[RecordLength-AuxLength:])

	// Burst registers sit at their own address.
	for i := 0; i < BurstLength; i++ {
		assert.Equal(t, i, fields[i].Address, "field %s", fields[i].Name)
		assert.Equal(t, GroupBurst, fields[i].Group)
	}
}

func TestFieldTableExcludesStatusRegisters(t *testing.T) {
	for _, name := range []string{"freqest", "lqi", "rssi", "marcstate", "wortime1", "wortime0", "pktstatus", "vco_vc_dac"} {
		_, err := FieldIndex(name)
		assert.ErrorIs(t, err, ErrUnknownField, name)
	}
}

func TestFieldAccessFlags(t *testing.T) {
	tests := []struct {
		name   string
		access Access
	}{
		{"_rcctrl1", AccessReserved},
		{"_rcctrl0", AccessReserved},
		{"ptest", AccessNoWrite},
		{"agctest", AccessNoWrite},
		{"partnum", AccessStatus},
		{"version", AccessStatus},
		{"_padding", AccessReserved},
		{"channr", AccessNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FieldByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.access, f.Access)
			if tt.access != AccessNormal {
				assert.True(t, f.Access.Has(tt.access))
			}
			assert.False(t, f.Access.Has(AccessNormal))
		})
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	fields := Fields()
	fields[0].Name = "changed"
	assert.Equal(t, "iocfg2", Fields()[0].Name)
}

func TestFromBytes(t *testing.T) {
	buf := make([]byte, RecordLength+4)
	for i := range buf {
		buf[i] = byte(i)
	}

	cfg, err := FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, RecordLength, cfg.Len())
	assert.Equal(t, buf[:RecordLength], cfg.Bytes())

	v, err := cfg.Get("channr")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x0A), v)
}

func TestFromBytesTooShort(t *testing.T) {
	for _, n := range []int{0, 53, RecordLength - 1} {
		_, err := FromBytes(make([]byte, n))
		var lerr *LengthError
		require.ErrorAs(t, err, &lerr, "length %d", n)
		assert.Equal(t, n, lerr.Got)
		assert.Equal(t, RecordLength, lerr.Want)
		assert.ErrorIs(t, err, ErrLength)
	}
}

func TestExtract(t *testing.T) {
	tail := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	buf := append(PowerUp().Bytes(), tail...)

	cfg, rest, err := Extract(buf)
	require.NoError(t, err)
	assert.Equal(t, PowerUp(), cfg)
	assert.Equal(t, tail, rest)

	cfg, rest, err = Extract(PowerUp().Bytes())
	require.NoError(t, err)
	assert.Equal(t, PowerUp(), cfg)
	assert.Empty(t, rest)

	_, _, err = Extract(tail)
	assert.ErrorIs(t, err, ErrLength)
}

func TestFromHexString(t *testing.T) {
	cfg, err := FromHexString(PowerUpHex)
	require.NoError(t, err)
	assert.Equal(t, PowerUpHex, cfg.Hex())

	lower, err := FromHexString(strings.ToLower(PowerUpHex))
	require.NoError(t, err)
	assert.Equal(t, cfg, lower)
}

func TestFromHexStringErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"107 chars", PowerUpHex[:107]},
		{"108 chars", PowerUpHex[:108]},
		{"one short", PowerUpHex[:HexLength-1]},
		{"one long", PowerUpHex + "0"},
		{"non-hex", "ZZ" + PowerUpHex[2:]},
		{"embedded space", " " + PowerUpHex[1:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHexString(tt.input)
			var ferr *FormatError
			require.ErrorAs(t, err, &ferr)
			assert.ErrorIs(t, err, ErrFormat)
			assert.Equal(t, len(tt.input), ferr.Length)
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		buf := make([]byte, RecordLength)
		rng.Read(buf)

		cfg, err := FromBytes(buf)
		require.NoError(t, err)
		if !bytes.Equal(buf, cfg.Bytes()) {
			t.Fatalf("round trip mismatch: %X != %X", buf, cfg.Bytes())
		}

		again, err := FromHexString(cfg.Hex())
		require.NoError(t, err)
		assert.Equal(t, cfg, again)
		assert.Equal(t, cfg.Hex(), again.Hex())
	}
}

func TestBytesIsACopy(t *testing.T) {
	cfg := PowerUp()
	b := cfg.Bytes()
	b[0] = ^b[0]
	assert.Equal(t, PowerUpHex, cfg.Hex())
}

func TestGetSet(t *testing.T) {
	for _, name := range FieldNames() {
		for _, v := range []int{0x00, 0x5A, 0xFF} {
			cfg := PowerUp()
			before := cfg.Bytes()

			require.NoError(t, cfg.Set(name, v))
			got, err := cfg.Get(name)
			require.NoError(t, err)
			assert.Equal(t, uint8(v), got, name)

			idx, err := FieldIndex(name)
			require.NoError(t, err)
			after := cfg.Bytes()
			for i := range after {
				if i == idx {
					continue
				}
				if after[i] != before[i] {
					t.Fatalf("Set(%s) changed position %d", name, i)
				}
			}
		}
	}
}

func TestGetUnknownField(t *testing.T) {
	_, err := PowerUp().Get("bogus")
	var uerr *UnknownFieldError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "bogus", uerr.Name)
}

func TestSetErrors(t *testing.T) {
	cfg := PowerUp()

	err := cfg.Set("CHANNR", 1)
	assert.ErrorIs(t, err, ErrUnknownField, "names are case-sensitive")

	for _, v := range []int{-1, 256, 1 << 20} {
		err = cfg.Set("channr", v)
		var rerr *RangeError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "channr", rerr.Field)
		assert.Equal(t, v, rerr.Value)
	}

	assert.Equal(t, PowerUp(), cfg, "failed writes leave the record untouched")
}

func TestPATable(t *testing.T) {
	cfg := PowerUp()
	assert.Equal(t, [PATableLength]byte{0xC6}, cfg.PATable())

	pa := [PATableLength]byte{1, 2, 3, 4, 5, 6, 7, 8}
	cfg.SetPATable(pa)
	assert.Equal(t, pa, cfg.PATable())

	v, err := cfg.Get("patable7")
	require.NoError(t, err)
	assert.Equal(t, uint8(8), v)
	assert.Len(t, cfg.Burst(), BurstLength)
}

func TestString(t *testing.T) {
	lines := strings.Split(PowerUp().String(), "\n")
	require.Len(t, lines, RecordLength)
	assert.Equal(t, "iocfg2 = 0x29", lines[0])
	assert.Equal(t, "patable0 = 0xc6", lines[BurstLength])
	assert.Equal(t, "_padding = 0x00", lines[RecordLength-1])
}

func TestTextMarshaling(t *testing.T) {
	text, err := TinyOSDefault().MarshalText()
	require.NoError(t, err)
	assert.Equal(t, TinyOSDefaultHex, string(text))

	var cfg Config
	require.NoError(t, cfg.UnmarshalText(text))
	assert.Equal(t, TinyOSDefault(), cfg)

	err = cfg.UnmarshalText([]byte("00"))
	assert.True(t, errors.Is(err, ErrFormat))
	assert.Equal(t, TinyOSDefault(), cfg)
}

func TestBaseline(t *testing.T) {
	cfg, err := Baseline("")
	require.NoError(t, err)
	assert.Equal(t, PowerUp(), cfg)

	cfg, err = Baseline("TinyOS")
	require.NoError(t, err)
	assert.Equal(t, TinyOSDefault(), cfg)

	_, err = Baseline("nope")
	assert.ErrorContains(t, err, "powerup, tinyos")

	assert.Equal(t, []string{"powerup", "tinyos"}, BaselineNames())
}
