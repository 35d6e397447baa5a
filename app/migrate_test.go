package app

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenCreatesAndReopens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")

	ix, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	ix.Close()

	// Reopening an existing database must be a no-op migration.
	ix, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	ix.Close()
}

func TestOpenRejectsIncompatibleSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "versioned.db")

	ix, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := ix.db.Exec(`UPDATE metadata SET value = '999' WHERE key = 'schema_version'`); err != nil {
		t.Fatalf("failed to fake schema version: %v", err)
	}
	ix.Close()

	_, err = Open(dbPath)
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError for schema mismatch, got %v", err)
	}
}
