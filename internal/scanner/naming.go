package scanner

import (
	"strings"
	"time"
)

const filenameTimestampLayout = "20060102_150405"

// buildFilename assembles the legal naming convention:
// {case}_{type}_{timestamp}[_{description}].pdf
func buildFilename(caseID, docType, description string, ts time.Time) string {
	var b strings.Builder
	b.WriteString(caseID)
	b.WriteByte('_')
	b.WriteString(docType)
	b.WriteByte('_')
	b.WriteString(ts.Format(filenameTimestampLayout))
	if safe := SanitizeDescription(description); safe != "" {
		b.WriteByte('_')
		b.WriteString(safe)
	}
	b.WriteString(".pdf")
	return b.String()
}

// SanitizeDescription strips a free-text description down to characters safe
// for filenames: letters, digits, dashes, and underscores, with interior
// spaces collapsed to underscores.
func SanitizeDescription(description string) string {
	var b strings.Builder
	for _, r := range description {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// CaseIDFromVIN derives a case identifier from a VIN's trailing characters
// so documents scanned for the same vehicle group together.
func CaseIDFromVIN(vin string) string {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if len(vin) > 6 {
		vin = vin[len(vin)-6:]
	}
	return "VIN_" + vin
}
