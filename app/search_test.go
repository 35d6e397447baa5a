package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"fsindex/models"
)

func TestSearchFilters(t *testing.T) {
	ix, s := setupTestIndex(t)

	now := time.Now()
	insertTestFile(t, ix, models.FileRecord{Path: "/data/small.log", Ext: "log", Size: 100, ModTime: now.AddDate(0, 0, -30)})
	insertTestFile(t, ix, models.FileRecord{Path: "/data/Report.PDF", Name: "Report.PDF", Ext: "pdf", Size: 500, ModTime: now.AddDate(0, 0, -7)})
	insertTestFile(t, ix, models.FileRecord{Path: "/data/big.iso", Ext: "iso", Size: 2000, ModTime: now})

	ctx := context.Background()

	t.Run("no filters returns everything", func(t *testing.T) {
		results, err := s.Search(ctx, nil)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
	})

	t.Run("size range composition", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{
			MinSize: int64ptr(200),
			MaxSize: int64ptr(1000),
		})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 1 || results[0].Size != 500 {
			t.Errorf("expected only the 500-byte record, got %+v", results)
		}
	})

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{NameLike: "report"})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 1 || results[0].Name != "Report.PDF" {
			t.Errorf("expected Report.PDF, got %+v", results)
		}
	})

	t.Run("extension equality is case-insensitive", func(t *testing.T) {
		for _, ext := range []string{"pdf", "PDF", ".pdf"} {
			results, err := s.Search(ctx, &models.SearchQuery{Ext: ext})
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(results) != 1 || results[0].Ext != "pdf" {
				t.Errorf("ext %q: expected the pdf record, got %+v", ext, results)
			}
		}
	})

	t.Run("date range", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{
			From: timeptr(now.AddDate(0, 0, -10)),
			To:   timeptr(now.AddDate(0, 0, -1)),
		})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 1 || results[0].Name != "Report.PDF" {
			t.Errorf("expected only Report.PDF in window, got %+v", results)
		}
	})

	t.Run("clauses combine with AND", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{
			NameLike: "re",
			MinSize:  int64ptr(1000),
		})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		// The name clause matches only Report.PDF, the size bound excludes it.
		if len(results) != 0 {
			t.Errorf("expected no results, got %+v", results)
		}
	})
}

func TestSearchSorting(t *testing.T) {
	ix, s := setupTestIndex(t)

	insertTestFile(t, ix, models.FileRecord{Path: "/b/file", Size: 10})
	insertTestFile(t, ix, models.FileRecord{Path: "/a/file", Size: 10})
	insertTestFile(t, ix, models.FileRecord{Path: "/c/file", Size: 5})

	ctx := context.Background()

	t.Run("size ascending with path tie-break", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{Sort: models.SortBySize})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		want := []string{"/c/file", "/a/file", "/b/file"}
		assertPathOrder(t, results, want)
	})

	t.Run("size descending keeps path tie-break ascending", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{Sort: models.SortBySize, Desc: true})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		want := []string{"/a/file", "/b/file", "/c/file"}
		assertPathOrder(t, results, want)
	})

	t.Run("default sort is name ascending", func(t *testing.T) {
		results, err := s.Search(ctx, nil)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		// All names equal ("file"), so path decides.
		want := []string{"/a/file", "/b/file", "/c/file"}
		assertPathOrder(t, results, want)
	})
}

func TestSearchPagination(t *testing.T) {
	ix, s := setupTestIndex(t)

	paths := []string{"/p/1", "/p/2", "/p/3", "/p/4", "/p/5"}
	for i, p := range paths {
		insertTestFile(t, ix, models.FileRecord{Path: p, Size: int64(i)})
	}

	ctx := context.Background()

	t.Run("limit and offset return the middle page", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		assertPathOrder(t, results, []string{"/p/2", "/p/3"})
	})

	t.Run("offset past the end yields empty, not an error", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{Limit: 2, Offset: 10})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected empty result, got %d rows", len(results))
		}
	})

	t.Run("offset without limit", func(t *testing.T) {
		results, err := s.Search(ctx, &models.SearchQuery{Offset: 3})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		assertPathOrder(t, results, []string{"/p/4", "/p/5"})
	})
}

func TestSearchRejectsInvalidQueries(t *testing.T) {
	_, s := setupTestIndex(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		query models.SearchQuery
	}{
		{"min size above max size", models.SearchQuery{MinSize: int64ptr(1000), MaxSize: int64ptr(10)}},
		{"from after to", models.SearchQuery{From: timeptr(time.Now()), To: timeptr(time.Now().AddDate(0, 0, -1))}},
		{"negative limit", models.SearchQuery{Limit: -5}},
		{"negative offset", models.SearchQuery{Offset: -1}},
		{"unknown sort key", models.SearchQuery{Sort: "owner"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Search(ctx, &tc.query)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestSearchSeesLastCommittedState(t *testing.T) {
	ix, s := setupTestIndex(t)

	insertTestFile(t, ix, models.FileRecord{Path: "/w/base"})

	tx, err := ix.db.Begin()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	_, err = tx.Exec(`
		INSERT INTO files(path, name, ext, size, mod_time, added_at, hash, last_seen)
		VALUES ('/w/pending', 'pending', '', 1, 1, 1, NULL, 0)
	`)
	if err != nil {
		t.Fatalf("insert inside open transaction failed: %v", err)
	}

	// The reader runs on its own connection; it must not block on the open
	// write transaction and must not see its uncommitted row.
	results, err := s.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("search alongside open transaction failed: %v", err)
	}
	if len(results) != 1 || results[0].Path != "/w/base" {
		t.Errorf("expected only the committed row, got %+v", results)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	results, err = s.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("search after commit failed: %v", err)
	}
	assertPathOrder(t, results, []string{"/w/base", "/w/pending"})
}

func TestRecent(t *testing.T) {
	ix, s := setupTestIndex(t)

	base := time.Now().Add(-time.Hour)
	insertTestFile(t, ix, models.FileRecord{Path: "/r/oldest", AddedAt: base})
	insertTestFile(t, ix, models.FileRecord{Path: "/r/newest", AddedAt: base.Add(2 * time.Minute)})
	insertTestFile(t, ix, models.FileRecord{Path: "/r/middle", AddedAt: base.Add(1 * time.Minute)})

	results, err := s.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}

	assertPathOrder(t, results, []string{"/r/newest", "/r/middle"})
}

func assertPathOrder(t *testing.T, results []models.FileRecord, want []string) {
	t.Helper()

	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, p := range want {
		if results[i].Path != p {
			t.Errorf("position %d: got %s, want %s", i, results[i].Path, p)
		}
	}
}
