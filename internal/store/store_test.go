package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yangwenmai/minutes/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestSaveAndListExports(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := model.Export{
		ID: "e1", SessionID: "s1", Filename: "a.md",
		Content: "# first", Status: model.StatusDraft, Version: 1,
		ExportedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := model.Export{
		ID: "e2", SessionID: "s1", Filename: "b.md",
		Content: "# second", Status: model.StatusFinal, Version: 3,
		ExportedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	if err := s.SaveExport(ctx, older); err != nil {
		t.Fatalf("SaveExport: %v", err)
	}
	if err := s.SaveExport(ctx, newer); err != nil {
		t.Fatalf("SaveExport: %v", err)
	}

	got, err := s.ListExports(ctx)
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "e2" || got[1].ID != "e1" {
		t.Errorf("order = [%s %s], want newest first", got[0].ID, got[1].ID)
	}
	if got[0].Content != "# second" || got[0].Status != model.StatusFinal || got[0].Version != 3 {
		t.Errorf("export = %+v", got[0])
	}
	if !got[1].ExportedAt.Equal(older.ExportedAt) {
		t.Errorf("ExportedAt = %s, want %s", got[1].ExportedAt, older.ExportedAt)
	}
}

func TestListExports_Empty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.ListExports(context.Background())
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if _, err := New(db); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(db); err != nil {
		t.Fatalf("second New: %v", err)
	}
}
