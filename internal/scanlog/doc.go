// Package scanlog persists the audit trail of scanned documents.
//
// Every completed scan is recorded with its filename, case, document type,
// and timestamp so a chain of custody can be reconstructed for legal filings
// even after the PDFs themselves move. Storage is a small SQLite database in
// the scans directory.
package scanlog
