package preflight_test

import (
	"context"
	"testing"

	"docket/internal/preflight"
	"docket/internal/testsupport"
)

type stubProbe struct{ available bool }

func (s stubProbe) Available(context.Context) bool { return s.available }

func TestCheckBinaries(t *testing.T) {
	statuses := preflight.CheckBinaries([]preflight.Requirement{
		{Name: "shell", Command: "sh"},
		{Name: "missing", Command: "definitely-not-a-real-binary-xyz"},
		{Name: "unset", Command: ""},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected missing binary with detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail: %+v", statuses[2])
	}
}

func TestFreeSpaceMiB(t *testing.T) {
	free, err := preflight.FreeSpaceMiB(t.TempDir())
	if err != nil {
		t.Fatalf("FreeSpaceMiB: %v", err)
	}
	if free < 0 {
		t.Fatalf("expected non-negative free space, got %d", free)
	}
}

func TestRunReflectsProbe(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Scanner.MinFreeMiB = 0

	status := preflight.Run(context.Background(), cfg, stubProbe{available: true})
	if !status.ScannerAvailable {
		t.Fatal("expected probe result to propagate")
	}
	if status.ScansDir != cfg.Paths.ScansDir {
		t.Fatalf("unexpected scans dir: %q", status.ScansDir)
	}
	if !status.FreeSpaceOK {
		t.Fatal("expected free space check to pass when disabled")
	}

	status = preflight.Run(context.Background(), cfg, stubProbe{available: false})
	if status.ScannerAvailable || status.Ready {
		t.Fatalf("expected not ready without scanner: %+v", status)
	}
}
