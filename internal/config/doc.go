// Package config loads, normalizes, and validates the TOML configuration
// shared by the daemon and the CLI. Defaults live in defaults.go, path and
// value normalization in normalize.go, and usability checks in validate.go.
package config
