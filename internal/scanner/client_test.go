package scanner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docket/internal/scanner"
	"docket/internal/testsupport"
)

type stubExecutor struct {
	probeOutput string
	probeErr    error
	scanErr     error
	createFile  bool
	calls       [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	s.calls = append(s.calls, append([]string(nil), args...))
	if len(args) == 1 && args[0] == "-L" {
		return s.probeOutput, s.probeErr
	}
	if s.scanErr != nil {
		return "", s.scanErr
	}
	if s.createFile {
		for _, arg := range args {
			if path, ok := strings.CutPrefix(arg, "--output="); ok {
				if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
					return "", err
				}
			}
		}
	}
	return "", nil
}

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestAvailableMatchesProbeOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exec := &stubExecutor{probeOutput: "device `epsonscan2:ES-580W:003:011' is a EPSON ES-580W scanner"}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !client.Available(context.Background()) {
		t.Fatal("expected scanner to be detected")
	}

	exec.probeOutput = "device `pixma:04A91234' is a CANON PIXMA scanner"
	if client.Available(context.Background()) {
		t.Fatal("expected non-matching device to be unavailable")
	}
}

func TestAvailableFalseWhenProbeFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exec := &stubExecutor{probeErr: errors.New("scanimage: command not found")}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if client.Available(context.Background()) {
		t.Fatal("expected probe failure to report unavailable")
	}
}

func TestScanProducesTimestampedPDF(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exec := &stubExecutor{
		probeOutput: "device `epson2:libusb:001:004' is a Epson ES-580W scanner",
		createFile:  true,
	}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec), scanner.WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	doc, err := client.Scan(context.Background(), scanner.Request{
		CaseID:       "VIN_066808",
		DocumentType: "service_invoice",
		Description:  "Great Lakes Hyundai 2025-09-20",
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	want := "VIN_066808_service_invoice_20260314_150926_Great_Lakes_Hyundai_2025-09-20.pdf"
	if doc.Filename != want {
		t.Fatalf("unexpected filename:\n got %q\nwant %q", doc.Filename, want)
	}
	if _, err := os.Stat(doc.Path); err != nil {
		t.Fatalf("expected scanned file on disk: %v", err)
	}
	if filepath.Dir(doc.Path) != cfg.Paths.ScansDir {
		t.Fatalf("expected output inside scans dir, got %s", doc.Path)
	}

	// probe + scan
	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 executor calls, got %d", len(exec.calls))
	}
	scanArgs := exec.calls[1]
	for _, expected := range []string{"--format=pdf", "--resolution=300", "--mode=Color"} {
		found := false
		for _, arg := range scanArgs {
			if arg == expected {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected arg %q in %v", expected, scanArgs)
		}
	}
}

func TestScanDefaultsDocumentType(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exec := &stubExecutor{probeOutput: "epson", createFile: true}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec), scanner.WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	doc, err := client.Scan(context.Background(), scanner.Request{CaseID: "palisade"})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if doc.DocumentType != "evidence" {
		t.Fatalf("expected default document type, got %q", doc.DocumentType)
	}
	if !strings.HasPrefix(doc.Filename, "palisade_evidence_") {
		t.Fatalf("unexpected filename: %q", doc.Filename)
	}
}

func TestScanRequiresCaseID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(&stubExecutor{probeOutput: "epson"}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Scan(context.Background(), scanner.Request{}); err == nil {
		t.Fatal("expected error for missing case id")
	}
}

func TestScanFailsWhenScannerUnavailable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(&stubExecutor{probeOutput: "no scanners were identified"}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Scan(context.Background(), scanner.Request{CaseID: "palisade"})
	if !errors.Is(err, scanner.ErrScannerUnavailable) {
		t.Fatalf("expected ErrScannerUnavailable, got %v", err)
	}
}

func TestScanRefusesWhenBelowFreeSpaceFloor(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// Larger than any filesystem the test can run on.
	cfg.Scanner.MinFreeMiB = 1 << 30
	exec := &stubExecutor{probeOutput: "epson", createFile: true}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Scan(context.Background(), scanner.Request{CaseID: "palisade"})
	if err == nil || !strings.Contains(err.Error(), "insufficient free space") {
		t.Fatalf("expected free-space refusal, got %v", err)
	}
	for _, call := range exec.calls {
		for _, arg := range call {
			if strings.HasPrefix(arg, "--output=") {
				t.Fatalf("scanimage must not run when space is low: %v", call)
			}
		}
	}
}

func TestScanErrorsWhenNoOutputProduced(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exec := &stubExecutor{probeOutput: "epson", createFile: false}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Scan(context.Background(), scanner.Request{CaseID: "palisade"})
	if err == nil || !strings.Contains(err.Error(), "no output file") {
		t.Fatalf("expected 'no output file' error, got %v", err)
	}
}

func TestScanReturnsExecutorError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exec := &stubExecutor{probeOutput: "epson", scanErr: errors.New("scanimage: sane_start: Device busy")}
	client, err := scanner.New(cfg, nil, scanner.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Scan(context.Background(), scanner.Request{CaseID: "palisade"}); err == nil {
		t.Fatal("expected error from executor")
	}
}
