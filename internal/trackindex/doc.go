// Package trackindex persists inspection results in a SQLite database so
// identical track content can be detected across compositions.
//
// Track fingerprints are deterministic digests of a track's resource list,
// which makes them a stable join key between independently inspected CPLs:
// two compositions that reference the same essence segments in the same
// order produce the same fingerprint. The index stores one row per
// inspected composition plus one row per virtual track, and answers
// fingerprint lookups with every composition that carries a matching track.
//
// The store is optional; when disabled in configuration, inspections simply
// skip recording.
package trackindex
