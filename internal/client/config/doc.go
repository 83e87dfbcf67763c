// Package config handles configuration for the FitTrack CLI: defaults,
// environment overlay, optional JSON file, and command-line flags, in
// that order of precedence (later sources win).
package config
