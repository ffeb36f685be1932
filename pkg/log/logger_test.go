package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}
	logger.Log(Event{Kind: KindAssign, Field: "channr", Value: 1})
	logger.Log(Event{})

	assert.Equal(t, NoopLogger{}, OrNoop(nil))
	rec := NewRecorder()
	assert.Same(t, rec, OrNoop(rec))
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindAssign, "ASSIGN"},
		{KindAlias, "ALIAS"},
		{KindSkip, "SKIP"},
		{KindPATable, "PATABLE"},
		{Kind(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "a.h:3 ASSIGN channr = 0x05",
		Event{Source: "a.h", Line: 3, Kind: KindAssign, Field: "channr", Value: 5}.String())
	assert.Equal(t, "a.h:7 ALIAS iocfg0d -> iocfg0",
		Event{Source: "a.h", Line: 7, Kind: KindAlias, Field: "iocfg0", Detail: "iocfg0d"}.String())
	assert.Equal(t, "a.yaml SKIP malformed",
		Event{Source: "a.yaml", Kind: KindSkip, Detail: "malformed"}.String())
}

func TestEventJSON(t *testing.T) {
	data, err := json.Marshal(Event{Kind: KindSkip, Detail: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"SKIP"`)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Log(Event{Kind: KindAssign, Field: "channr"})
	rec.Log(Event{Kind: KindAlias, Field: "iocfg0"})
	rec.Log(Event{Kind: KindAssign, Field: "iocfg0"})

	events := rec.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "channr", events[0].Field)

	assigns := rec.Filter(KindAssign)
	require.Len(t, assigns, 2)
	assert.Equal(t, "iocfg0", assigns[1].Field)
	assert.Empty(t, rec.Filter(KindSkip))

	events[0].Field = "mutated"
	assert.Equal(t, "channr", rec.Events()[0].Field)

	rec.Reset()
	assert.Empty(t, rec.Events())
}

func TestMultiLogger(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	m := NewMultiLogger(a, nil, b)
	m.Log(Event{Kind: KindSkip})
	m.Log(Event{Kind: KindAssign})

	assert.Len(t, a.Events(), 2)
	assert.Len(t, b.Events(), 2)
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	adapter.Log(Event{
		Time:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Source: "radio.h",
		Line:   12,
		Kind:   KindAssign,
		Field:  "channr",
		Value:  0x05,
	})
	adapter.Log(Event{Source: "radio.h", Line: 13, Kind: KindAlias, Field: "iocfg0", Detail: "iocfg0d"})
	adapter.Log(Event{Source: "radio.h", Line: 14, Kind: KindSkip, Detail: "expected name and value"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "debug", first["level"])
	assert.Equal(t, "ASSIGN", first["kind"])
	assert.Equal(t, "channr", first["field"])
	assert.Equal(t, float64(5), first["value"])
	assert.Equal(t, float64(12), first["line"])
	assert.Equal(t, "load", first["message"])

	assert.Contains(t, lines[1], `"from":"iocfg0d"`)
	assert.Contains(t, lines[2], `"reason":"expected name and value"`)
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	adapter.Log(Event{Kind: KindAssign, Field: "channr"})
	assert.Empty(t, buf.String())
}

func TestEventJSONRoundTrip(t *testing.T) {
	in := Event{Source: "a.h", Line: 2, Kind: KindPATable, Field: "patable0", Value: 0xC0}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Event
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Kind, out.Kind)
	assert.Equal(t, in.Field, out.Field)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("BOGUS")))
}
