// Package vin validates and decodes 17-character Vehicle Identification
// Numbers (ISO 3779) into human-readable fields for legal documentation.
//
// Decoding never fails hard: malformed input produces a fully-formed result
// with placeholder values and an ordered list of validation messages, so
// callers can always render something. Lookup tables for manufacturers,
// model years, and vehicle-type signatures are plain data; extending
// coverage is a table edit, not a logic change.
package vin
