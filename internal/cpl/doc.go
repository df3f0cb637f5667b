// Package cpl builds the composition model from a parsed IMF Composition
// Playlist document.
//
// Build walks the element tree once: it resolves the document's working
// namespace, extracts the composition title and edit rate, then iterates the
// sequence list in document order. Each sequence dispatches on its local name
// to one of the closed virtual track kinds (image, audio, subtitle), matches
// its SourceEncoding reference to an essence descriptor elsewhere in the
// document, and aggregates its resource list into a total duration and a
// SHA-1 content fingerprint.
//
// Malformed sequences are skipped with a logged diagnostic and extraction
// continues; only a malformed document, a missing edit rate, or a resource
// with no usable duration aborts more than the affected sequence. Duration
// arithmetic stays on exact rationals so fingerprints are deterministic
// across platforms.
//
// The model holds raw UL identifier strings. Label resolution happens at
// report time (internal/report) with an explicitly supplied registry.
package cpl
