package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"fsindex/models"
)

func TestStats(t *testing.T) {
	ix, s := setupTestIndex(t)

	now := time.Now()
	insertTestFile(t, ix, models.FileRecord{Path: "/s/a.txt", Ext: "txt", Size: 100, ModTime: now.Add(-2 * time.Hour), Hash: strptr("aa")})
	insertTestFile(t, ix, models.FileRecord{Path: "/s/b.txt", Ext: "txt", Size: 300, ModTime: now})
	insertTestFile(t, ix, models.FileRecord{Path: "/s/c.log", Ext: "log", Size: 200, ModTime: now.Add(-time.Hour)})

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.TotalFiles != 3 {
		t.Errorf("expected 3 total files, got %d", stats.TotalFiles)
	}
	if stats.HashedFiles != 1 {
		t.Errorf("expected 1 hashed file, got %d", stats.HashedFiles)
	}
	if stats.TotalSize != 600 {
		t.Errorf("expected total size 600, got %d", stats.TotalSize)
	}
	if stats.AvgFileSize != 200 {
		t.Errorf("expected average size 200, got %d", stats.AvgFileSize)
	}
	if !stats.NewestFile.After(stats.OldestFile) {
		t.Errorf("newest %v not after oldest %v", stats.NewestFile, stats.OldestFile)
	}
	if len(stats.LargestFiles) != 3 || stats.LargestFiles[0].Path != "/s/b.txt" {
		t.Errorf("unexpected largest files: %+v", stats.LargestFiles)
	}
	if len(stats.TopExtensions) != 2 || stats.TopExtensions[0].Extension != "txt" {
		t.Errorf("unexpected top extensions: %+v", stats.TopExtensions)
	}
}

func TestStatsSurfacesBadLastScan(t *testing.T) {
	ix, s := setupTestIndex(t)

	insertTestFile(t, ix, models.FileRecord{Path: "/s/a"})
	if err := setMetadata(ix.db, "last_scan", "not-a-timestamp"); err != nil {
		t.Fatalf("failed to seed metadata: %v", err)
	}

	_, err := s.Stats(context.Background())
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}
