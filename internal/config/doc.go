// Package config loads, normalizes, and validates docket configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: scan output directories, scanner device settings, and log
// routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
