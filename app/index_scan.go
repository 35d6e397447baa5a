package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fsindex/models"
)

// ScanOptions control one scan invocation. Hashing is opt-in per scan; when
// enabled every visited file is rehashed even if a digest is already stored,
// since mod_time is not a reliable freshness check.
type ScanOptions struct {
	ComputeHash  bool
	Prune        bool
	Workers      int
	ExcludePaths []string
	Logger       *ScanLogger
}

const upsertBatchSize = 1000

// Scan walks root, upserts every regular file into the index and returns a
// summary. Per-entry failures are counted and skipped; only database failures
// or cancellation abort the scan. With Prune set, paths under root that were
// indexed before but not observed in this pass are removed in a single
// statement after the walk.
func (ix *Indexer) Scan(ctx context.Context, root string, opts ScanOptions) (*models.ScanSummary, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, configErrorf("resolving root %s: %v", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, configErrorf("root path %s: %v", absRoot, err)
	}
	if !info.IsDir() {
		return nil, configErrorf("root path %s is not a directory", absRoot)
	}

	start := time.Now()
	// The generation stamps every row touched by this scan; pruning deletes
	// rows under root carrying any other stamp.
	generation := start.UnixNano()
	summary := &models.ScanSummary{
		Root:   absRoot,
		Errors: make(map[models.SkipReason]int64),
	}

	logf := log.Printf
	if opts.Logger != nil {
		logf = opts.Logger.Log
	}
	logf("Scanning %s (hash=%v, prune=%v)", absRoot, opts.ComputeHash, opts.Prune)

	// The walk gets its own cancellable context so that an early return,
	// a store failure mid-scan included, releases workers blocked on the
	// result buffer instead of leaking them.
	walkCtx, stopWalk := context.WithCancel(ctx)
	defer stopWalk()

	source := newLocalSource(absRoot, opts.ExcludePaths, opts.Workers, opts.ComputeHash)

	var batch []models.FileRecord
	for res := range source.Walk(walkCtx) {
		if res.err != nil {
			summary.Skipped++
			summary.Errors[res.err.Reason]++
			logf("Skipping %s: %v", res.err.Path, res.err.Err)
			continue
		}
		if res.hashErr != nil {
			// Indexed without a digest for this scan.
			summary.Errors[res.hashErr.Reason]++
			logf("Hashing failed for %s: %v", res.hashErr.Path, res.hashErr.Err)
		}

		batch = append(batch, *res.rec)
		summary.Indexed++

		if len(batch) >= upsertBatchSize {
			if err := upsertBatch(ctx, ix.db, batch, generation); err != nil {
				return nil, err
			}
			batch = batch[:0]
			logf("Scanned %d files saved", summary.Indexed)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := upsertBatch(ctx, ix.db, batch, generation); err != nil {
		return nil, err
	}

	if opts.Prune {
		pruned, err := pruneMissing(ctx, ix.db, absRoot, generation)
		if err != nil {
			return nil, err
		}
		summary.Pruned = pruned
	}

	if err := setLastScan(ix.db); err != nil {
		return nil, dbError("record last scan", err)
	}

	summary.Duration = time.Since(start)
	logf("Scan completed: %d indexed, %d skipped, %d pruned in %v",
		summary.Indexed, summary.Skipped, summary.Pruned, summary.Duration)
	return summary, nil
}

// upsertBatch writes one batch inside a transaction. Re-visited paths keep
// their added_at; everything else, the stored hash included, reflects this
// scan. An interrupted transaction rolls back as a whole.
func upsertBatch(ctx context.Context, db *sql.DB, files []models.FileRecord, generation int64) error {
	if len(files) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO files(path, name, ext, size, mod_time, added_at, hash, last_seen)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            name = excluded.name,
            ext = excluded.ext,
            size = excluded.size,
            mod_time = excluded.mod_time,
            hash = excluded.hash,
            last_seen = excluded.last_seen;
    `)
	if err != nil {
		return dbError("prepare upsert", err)
	}
	defer stmt.Close()

	addedAt := time.Now().Unix()
	for _, f := range files {
		_, err = stmt.ExecContext(ctx,
			f.Path, f.Name, f.Ext, f.Size, f.ModTime.Unix(), addedAt, f.Hash, generation)
		if err != nil {
			return dbError(fmt.Sprintf("upsert %s", f.Path), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError("commit transaction", err)
	}
	committed = true

	return nil
}

// pruneMissing removes stale rows under root in one atomic pass, keyed on the
// scan generation. Rows outside root, indexed from other scans, are untouched.
func pruneMissing(ctx context.Context, db *sql.DB, root string, generation int64) (int64, error) {
	res, err := db.ExecContext(ctx, `
        DELETE FROM files
        WHERE last_seen <> ?
          AND (path = ? OR path LIKE ? ESCAPE '\')
    `, generation, root, pruneScope(root))
	if err != nil {
		return 0, dbError("prune missing", err)
	}
	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, dbError("prune missing", err)
	}
	return pruned, nil
}

// pruneScope builds the LIKE pattern matching all descendants of root. A root
// that already ends in a separator, the filesystem root itself, gets no second
// separator appended.
func pruneScope(root string) string {
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return escapeLike(prefix) + "%"
}
