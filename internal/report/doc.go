// Package report turns a composition model into the final reporting shape.
//
// This is the only layer that resolves UL identifiers to display labels; the
// registry is passed explicitly into Build, never held as ambient state. The
// split mirrors the extraction contract: compression, container, transfer,
// coding, color, and channel-assignment fields are label-resolved, while MCA
// channel and soundfield tag symbols are reported verbatim. An unresolvable
// UL renders as null, never as an error.
//
// Durations render as zero-padded "HH:MM:SS.mmm" clock strings from the
// model's exact rational seconds. RFC 5646 language fields are validated for
// diagnostics only; invalid tags are still reported verbatim.
package report
