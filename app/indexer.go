package app

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Indexer owns the write path of one index database. Queries go through a
// Searcher on its own connection; WAL mode lets both run concurrently with
// last-committed visibility.
type Indexer struct {
	db     *sql.DB
	dbPath string
}

// Open creates the database file if absent, applies migrations and returns a
// handle ready for scanning.
func Open(dbPath string) (*Indexer, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, configErrorf("resolving db path %s: %v", dbPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, dbError("create db directory", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, dbError("open", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Indexer{db: db, dbPath: absPath}, nil
}

func (ix *Indexer) Close() error {
	return ix.db.Close()
}

// DBPath returns the resolved location of the index database.
func (ix *Indexer) DBPath() string {
	return ix.dbPath
}

// Delete removes a single path from the index; a missing path is a no-op.
func (ix *Indexer) Delete(ctx context.Context, path string) error {
	_, err := ix.db.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path)
	return dbError("delete path", err)
}

func applyPragmas(db *sql.DB) error {
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		return dbError("set journal_mode = WAL", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		return dbError("set busy_timeout", err)
	}
	return nil
}

func setMetadata(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
        INSERT INTO metadata(key, value)
        VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value
    `, key, value)
	return err
}

func setLastScan(db *sql.DB) error {
	return setMetadata(db, "last_scan", time.Now().Format(time.RFC3339))
}

func getLastScan(db *sql.DB) (time.Time, error) {
	var ts string
	err := db.QueryRow(`SELECT value FROM metadata WHERE key='last_scan'`).Scan(&ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
