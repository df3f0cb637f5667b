// Package config loads, normalizes, and validates cplinfo configuration.
//
// Configuration is TOML, resolved from an explicit --config path, then
// ~/.config/cplinfo/config.toml, then ./cplinfo.toml. A missing file is not
// an error; defaults apply. Paths are tilde-expanded and made absolute
// during normalization so downstream code never re-resolves them.
package config
