package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fsindex/models"
)

// setupTestIndex creates a temporary index database with both halves of the
// engine: the write handle and a reader on its own connection.
func setupTestIndex(t *testing.T) (*Indexer, *Searcher) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	ix, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open indexer: %v", err)
	}

	s, err := NewSearcher(dbPath)
	if err != nil {
		ix.Close()
		t.Fatalf("failed to open searcher: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
		ix.Close()
	})

	return ix, s
}

// writeFile creates a file with the given content under dir, creating parent
// directories as needed, and returns its absolute path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// insertTestFile writes a record straight into the files table, bypassing the
// scanner, for query-layer tests.
func insertTestFile(t *testing.T, ix *Indexer, f models.FileRecord) {
	t.Helper()

	if f.ModTime.IsZero() {
		f.ModTime = time.Now()
	}
	if f.AddedAt.IsZero() {
		f.AddedAt = time.Now()
	}
	if f.Name == "" {
		f.Name = filepath.Base(f.Path)
	}

	_, err := ix.db.Exec(`
		INSERT INTO files(path, name, ext, size, mod_time, added_at, hash, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, f.Path, f.Name, f.Ext, f.Size, f.ModTime.Unix(), f.AddedAt.Unix(), f.Hash)
	if err != nil {
		t.Fatalf("failed to insert test file %s: %v", f.Path, err)
	}
}

func strptr(s string) *string { return &s }

func int64ptr(n int64) *int64 { return &n }

func timeptr(t time.Time) *time.Time { return &t }
