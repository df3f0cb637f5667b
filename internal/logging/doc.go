// Package logging builds the slog loggers used across cplinfo.
//
// Two handler formats are supported: a compact console format for humans
// (timestamp, level, component prefix, key=value attributes) and standard
// JSON for machine consumption. Components obtain scoped loggers via
// NewComponentLogger; code that runs without a logger gets a no-op via
// NewNop, so nil checks never leak into call sites.
//
// Extraction diagnostics (skipped sequences, unknown namespaces, missing
// fields) are emitted through this package only; diagnostics never drive
// control flow beyond the documented skip/abort decisions.
package logging
