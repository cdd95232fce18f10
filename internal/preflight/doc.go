// Package preflight evaluates whether the host can scan documents: required
// binaries on PATH, scanner presence, and free space in the scans directory.
package preflight
