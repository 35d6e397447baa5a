package app

import (
	"context"
	"time"

	"fsindex/models"
)

// Stats summarizes the current index content.
func (s *Searcher) Stats(ctx context.Context) (*models.IndexStats, error) {
	stats := &models.IndexStats{}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&stats.TotalFiles)
	if err != nil {
		return nil, dbError("count files", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE hash IS NOT NULL`).Scan(&stats.HashedFiles)
	if err != nil {
		return nil, dbError("count hashed files", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size), 0) FROM files`).Scan(&stats.TotalSize)
	if err != nil {
		return nil, dbError("sum sizes", err)
	}

	if stats.TotalFiles > 0 {
		stats.AvgFileSize = stats.TotalSize / stats.TotalFiles
	}

	var oldestMod, newestMod int64
	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(MIN(mod_time), 0) FROM files`).Scan(&oldestMod)
	if err != nil {
		return nil, dbError("min mod_time", err)
	}
	if oldestMod > 0 {
		stats.OldestFile = time.Unix(oldestMod, 0)
	}
	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(mod_time), 0) FROM files`).Scan(&newestMod)
	if err != nil {
		return nil, dbError("max mod_time", err)
	}
	if newestMod > 0 {
		stats.NewestFile = time.Unix(newestMod, 0)
	}

	stats.LastScan, err = getLastScan(s.db)
	if err != nil {
		return nil, dbError("read last scan", err)
	}

	largest, err := s.Search(ctx, &models.SearchQuery{
		Sort:  models.SortBySize,
		Desc:  true,
		Limit: 10,
	})
	if err != nil {
		return nil, err
	}
	stats.LargestFiles = largest

	stats.TopExtensions, err = s.topExtensions(ctx, "cnt")
	if err != nil {
		return nil, err
	}
	stats.TopExtBySize, err = s.topExtensions(ctx, "total_size")
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Searcher) topExtensions(ctx context.Context, orderBy string) ([]models.ExtensionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT ext, COUNT(*) AS cnt, COALESCE(SUM(size), 0) AS total_size
        FROM files
        WHERE ext != ''
        GROUP BY ext
        ORDER BY `+orderBy+` DESC
        LIMIT 15
    `)
	if err != nil {
		return nil, dbError("aggregate extensions", err)
	}
	defer rows.Close()

	var out []models.ExtensionStats
	for rows.Next() {
		var ext models.ExtensionStats
		if err := rows.Scan(&ext.Extension, &ext.Count, &ext.Size); err != nil {
			return nil, dbError("scan extension stats", err)
		}
		out = append(out, ext)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("read extension stats", err)
	}
	return out, nil
}
