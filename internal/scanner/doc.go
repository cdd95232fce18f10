// Package scanner drives a flatbed document scanner through the SANE
// scanimage frontend to produce timestamped PDF evidence files.
//
// The Client shells out to scanimage with per-operation timeouts and holds an
// exclusive file lock on the scans directory while a scan runs, since a
// single physical scanner cannot serve two invocations at once. Command
// execution sits behind the Executor interface so tests can stub the CLI.
package scanner
