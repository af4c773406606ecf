package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_SaveAndLatestRuns(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	first := Run{
		Project:   "web",
		StartedAt: base,
		Units:     10,
		Unused:    4,
		Lines:     40,
		Files:     []FileTotal{{Path: "src/b.ts", Symbols: 1, Lines: 10}, {Path: "src/a.ts", Symbols: 3, Lines: 30}},
	}
	second := Run{
		ID:        "fixed-id",
		Project:   "web",
		StartedAt: base.Add(time.Hour),
		Duration:  1500 * time.Millisecond,
		Units:     11,
		Unused:    2,
		Unknown:   1,
		Lines:     12,
	}
	other := Run{Project: "api", StartedAt: base.Add(2 * time.Hour), Unused: 99}

	for _, r := range []Run{first, second, other} {
		if err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("save run: %v", err)
		}
	}

	runs, err := store.LatestRuns(ctx, "web", 5)
	if err != nil {
		t.Fatalf("latest runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs for project web, got %d", len(runs))
	}
	if runs[0].ID != "fixed-id" {
		t.Fatalf("expected newest run first, got %q", runs[0].ID)
	}
	if runs[0].Duration != 1500*time.Millisecond {
		t.Fatalf("expected duration round-trip, got %s", runs[0].Duration)
	}
	if runs[1].ID == "" {
		t.Fatal("expected generated run ID")
	}
	if len(runs[1].Files) != 2 || runs[1].Files[0].Path != "src/a.ts" {
		t.Fatalf("expected per-file totals sorted by path, got %+v", runs[1].Files)
	}
	if !runs[1].StartedAt.Equal(base) {
		t.Fatalf("expected started_at %s, got %s", base, runs[1].StartedAt)
	}

	latest, err := store.LatestRuns(ctx, "web", 1)
	if err != nil {
		t.Fatalf("latest runs: %v", err)
	}
	if len(latest) != 1 || latest[0].ID != "fixed-id" {
		t.Fatalf("expected only the newest run, got %+v", latest)
	}
}

func TestStore_DuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	run := Run{ID: "same", Project: "web"}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveRun(ctx, run); err == nil {
		t.Fatal("expected primary key violation on duplicate run ID")
	}
}

func TestOpen_RejectsDirectoryAndEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := sql.Open(driverName, "file:"+path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != len(migrations) {
		t.Fatalf("expected %d migration rows, got %d", len(migrations), count)
	}
}

func TestCompare(t *testing.T) {
	current := Run{Unused: 5, Unknown: 1, Lines: 50}
	if d := Compare(current, nil); d != (Delta{}) {
		t.Fatalf("expected zero delta without previous run, got %+v", d)
	}
	prev := &Run{Unused: 8, Unknown: 0, Lines: 70}
	d := Compare(current, prev)
	if d.Unused != -3 || d.Unknown != 1 || d.Lines != -20 || d.Previous != prev {
		t.Fatalf("unexpected delta %+v", d)
	}
}

func TestIsLockError(t *testing.T) {
	if !isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")) {
		t.Fatal("expected lock error")
	}
	if isLockError(errors.New("no such table")) {
		t.Fatal("expected non-lock error")
	}
	if isLockError(nil) {
		t.Fatal("nil is not a lock error")
	}
}
