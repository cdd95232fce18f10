package scanner

import (
	"testing"
	"time"
)

func TestBuildFilename(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := buildFilename("palisade", "evidence", "", ts)
	if got != "palisade_evidence_20260102_030405.pdf" {
		t.Fatalf("unexpected filename: %q", got)
	}

	got = buildFilename("VIN_066808", "service_invoice", "Oil consumption report #3!", ts)
	want := "VIN_066808_service_invoice_20260102_030405_Oil_consumption_report_3.pdf"
	if got != want {
		t.Fatalf("unexpected filename:\n got %q\nwant %q", got, want)
	}
}

func TestSanitizeDescription(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"two words", "two_words"},
		{"dash-ok_under", "dash-ok_under"},
		{"  trim me  ", "trim_me"},
		{"strip/slashes\\and:colons", "stripslashesandcolons"},
		{"no $pecials (at all)", "no_pecials_at_all"},
	}
	for _, tc := range cases {
		if got := SanitizeDescription(tc.in); got != tc.want {
			t.Fatalf("SanitizeDescription(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCaseIDFromVIN(t *testing.T) {
	if got := CaseIDFromVIN("KM8R54HE1LU066808"); got != "VIN_066808" {
		t.Fatalf("unexpected case id: %q", got)
	}
	if got := CaseIDFromVIN("km8r54he1lu066808"); got != "VIN_066808" {
		t.Fatalf("expected uppercased case id, got %q", got)
	}
	if got := CaseIDFromVIN("1234"); got != "VIN_1234" {
		t.Fatalf("expected short VIN passthrough, got %q", got)
	}
}
