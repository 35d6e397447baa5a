package app

import (
	"context"

	"fsindex/models"
)

// Duplicates groups indexed files by (hash, size); both must match so that
// equal digests of unequal length never collapse into one group. Rows without
// a stored hash are excluded entirely. Groups are ordered by member count
// descending, then hash ascending; members within a group by path ascending.
// limit caps the number of groups, <= 0 for all.
func (s *Searcher) Duplicates(ctx context.Context, limit int64) ([]models.DuplicateGroup, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT hash, size, COUNT(*) AS members
        FROM files
        WHERE hash IS NOT NULL
        GROUP BY hash, size
        HAVING members > 1
        ORDER BY members DESC, hash ASC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, dbError("group duplicates", err)
	}
	defer rows.Close()

	type groupKey struct {
		hash string
		size int64
	}
	var keys []groupKey
	for rows.Next() {
		var key groupKey
		var members int64
		if err := rows.Scan(&key.hash, &key.size, &members); err != nil {
			return nil, dbError("scan group", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("read groups", err)
	}

	groups := make([]models.DuplicateGroup, 0, len(keys))
	for _, key := range keys {
		memberRows, err := s.db.QueryContext(ctx, `
            SELECT `+recordColumns+`
            FROM files
            WHERE hash = ? AND size = ?
            ORDER BY path ASC
        `, key.hash, key.size)
		if err != nil {
			return nil, dbError("load group members", err)
		}
		files, err := scanRecords(memberRows)
		memberRows.Close()
		if err != nil {
			return nil, err
		}
		groups = append(groups, models.DuplicateGroup{
			Hash:  key.hash,
			Size:  key.size,
			Files: files,
		})
	}

	return groups, nil
}
