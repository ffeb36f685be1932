// Package log provides load tracing for register configuration sources.
//
// Loaders report what they did with each line of a source (which setting
// was applied to which register, which names were remapped, which lines
// were skipped) as Events to a Logger. This is separate from operational
// logging: a load trace is a complete, ordered account of how a Config was
// built and can be replayed or printed.
//
// # Basic Usage
//
// Applications pass a Logger in the loader options:
//
//	// Discard events (default)
//	opts.Logger = log.NoopLogger{}
//
//	// Print events on the console at debug level
//	opts.Logger = log.NewZerologAdapter(zerolog.New(os.Stderr))
//
//	// Keep events for later display
//	rec := log.NewRecorder()
//	opts.Logger = log.NewMultiLogger(rec, log.NewZerologAdapter(logger))
//
// # Event Kinds
//
//   - KindAssign: a setting was written into a register
//   - KindAlias: a setting name was remapped to its canonical register
//   - KindSkip: a line looked like a setting but was ignored
//   - KindPATable: the PA table was written from a PA_TABLE definition
package log
