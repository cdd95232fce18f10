package scanlog_test

import (
	"context"
	"testing"
	"time"

	"docket/internal/scanlog"
)

func openStore(t *testing.T) *scanlog.Store {
	t.Helper()
	store, err := scanlog.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		entry, err := store.Record(ctx, name, "VIN_066808", "evidence", "", base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("Record %s: %v", name, err)
		}
		if entry.ID == 0 || entry.ScanID == "" {
			t.Fatalf("expected assigned ids, got %+v", entry)
		}
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Filename != "c.pdf" || entries[2].Filename != "a.pdf" {
		t.Fatalf("expected newest first, got %q..%q", entries[0].Filename, entries[2].Filename)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(limited))
	}
}

func TestListByCase(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := store.Record(ctx, "x.pdf", "VIN_066808", "service_invoice", "oil report", now); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, "y.pdf", "VIN_123456", "evidence", "", now); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.ListByCase(ctx, "VIN_066808")
	if err != nil {
		t.Fatalf("ListByCase: %v", err)
	}
	if len(entries) != 1 || entries[0].Filename != "x.pdf" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].Description != "oil report" {
		t.Fatalf("expected description round-trip, got %q", entries[0].Description)
	}
}

func TestRecordRequiresFilename(t *testing.T) {
	store := openStore(t)
	if _, err := store.Record(context.Background(), "", "case", "evidence", "", time.Now()); err == nil {
		t.Fatal("expected error for empty filename")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	store, err := scanlog.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(context.Background(), "a.pdf", "case", "evidence", "", time.Now()); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := scanlog.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(entries))
	}
}
