package log

import (
	"github.com/rs/zerolog"
)

// ZerologAdapter writes load events to a zerolog.Logger at debug level.
// Useful for development when you want to see how a source was applied.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter that writes to the given logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Log writes the event to the zerolog logger at Debug level.
func (a *ZerologAdapter) Log(event Event) {
	ev := a.logger.Debug().
		Str("kind", event.Kind.String()).
		Str("source", event.Source)

	if event.Line > 0 {
		ev = ev.Int("line", event.Line)
	}
	if event.Field != "" {
		ev = ev.Str("field", event.Field)
	}

	switch event.Kind {
	case KindAssign, KindPATable:
		ev = ev.Uint8("value", event.Value)
	case KindAlias:
		ev = ev.Str("from", event.Detail)
	case KindSkip:
		ev = ev.Str("reason", event.Detail)
	}

	if !event.Time.IsZero() {
		ev = ev.Time("at", event.Time)
	}
	ev.Msg("load")
}

// Compile-time interface satisfaction check.
var _ Logger = (*ZerologAdapter)(nil)
