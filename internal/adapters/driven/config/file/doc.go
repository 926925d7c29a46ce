// Package file provides a TOML-backed configuration loader.
//
// Configuration lives in a single file, by default ~/.dealflow/config.toml.
// Values absent from the file fall back to defaults, so a missing config
// file is not an error for commands that work on local data only.
package file
