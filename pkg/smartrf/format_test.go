package smartrf

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

func randomConfig(t *testing.T, seed uint64) rf1a.Config {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed^0x5eed))
	b := make([]byte, rf1a.RecordLength)
	for i := range b {
		b[i] = byte(r.UintN(256))
	}
	cfg, err := rf1a.FromBytes(b)
	require.NoError(t, err)
	return cfg
}

func TestWriteHeaderRoundTrip(t *testing.T) {
	for seed := range uint64(8) {
		cfg := randomConfig(t, seed)

		var buf bytes.Buffer
		require.NoError(t, WriteHeader(&buf, cfg))

		for _, opts := range []Options{{}, {PATable: true}, {Format: FormatHeader}} {
			prof, err := NewParser(opts).ParseBytes(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, cfg, prof.Config)
			assert.Len(t, prof.Assigned, rf1a.RecordLength+boolToInt(opts.PATable)*rf1a.PATableLength)
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestWriteHeaderContents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, rf1a.TinyOSDefault()))
	out := buf.String()

	assert.Contains(t, out, "/* Base frequency = 901.999969 */")
	assert.Contains(t, out, "/* Modulation format = 2-GFSK */")
	assert.Contains(t, out, "#define PA_TABLE {0xc0,0x00,0x00,0x00,0x00,0x00,0x00,0x00}")
	assert.Contains(t, out, "#define SMARTRF_SETTING_CHANNR")
	assert.Contains(t, out, "#define SMARTRF_SETTING_PATABLE0")

	var defines int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "#define "+Marker) {
			defines++
		}
	}
	assert.Equal(t, rf1a.RecordLength, defines)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := randomConfig(t, 42)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, "random", cfg))
	assert.True(t, strings.HasPrefix(buf.String(), "source: random\nregisters:\n  iocfg2: 0x"))

	prof, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, prof.Format)
	assert.Equal(t, "random", prof.Label)
	assert.Equal(t, cfg, prof.Config)
}

func TestWriteYAMLWithoutLabel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, "", rf1a.PowerUp()))
	assert.True(t, strings.HasPrefix(buf.String(), "registers:\n"))
	assert.Contains(t, buf.String(), "  channr: 0x00\n")
}

func TestWriteHexRoundTrip(t *testing.T) {
	cfg := randomConfig(t, 7)

	var buf bytes.Buffer
	require.NoError(t, WriteHex(&buf, cfg))
	assert.Equal(t, cfg.Hex()+"\n", buf.String())

	prof, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatHex, prof.Format)
	assert.Equal(t, cfg, prof.Config)
}
