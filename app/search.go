package app

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fsindex/models"

	_ "modernc.org/sqlite"
)

// Searcher is the read path over an index database. It holds its own
// connection so queries and duplicate scans run concurrently with an active
// scan, seeing the last committed state.
type Searcher struct {
	db *sql.DB
}

func NewSearcher(dbPath string) (*Searcher, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, dbError("open", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Searcher{db: db}, nil
}

func (s *Searcher) Close() error {
	return s.db.Close()
}

const recordColumns = `path, name, ext, size, mod_time, added_at, hash`

var sortColumns = map[models.SortKey]string{
	models.SortByName:     "name",
	models.SortBySize:     "size",
	models.SortByModified: "mod_time",
	models.SortByAdded:    "added_at",
}

// Search runs an AND-composition of the query's present filter clauses,
// ordered by the sort key with path as tie-break. An offset past the end of
// the result set yields an empty slice.
func (s *Searcher) Search(ctx context.Context, q *models.SearchQuery) ([]models.FileRecord, error) {
	if q == nil {
		q = &models.SearchQuery{}
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	var conds []string
	var args []any

	if q.NameLike != "" {
		// LIKE is case-insensitive for ASCII in SQLite, matching the filter
		// contract for name substrings.
		conds = append(conds, `name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q.NameLike)+"%")
	}
	if q.Ext != "" {
		conds = append(conds, `ext = ?`)
		args = append(args, normalizeExt(q.Ext))
	}
	if q.MinSize != nil {
		conds = append(conds, `size >= ?`)
		args = append(args, *q.MinSize)
	}
	if q.MaxSize != nil {
		conds = append(conds, `size <= ?`)
		args = append(args, *q.MaxSize)
	}
	if q.From != nil {
		conds = append(conds, `mod_time >= ?`)
		args = append(args, q.From.Unix())
	}
	if q.To != nil {
		conds = append(conds, `mod_time <= ?`)
		args = append(args, q.To.Unix())
	}

	var b strings.Builder
	b.WriteString("SELECT " + recordColumns + " FROM files")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = models.SortByName
	}
	column := sortColumns[sortKey]
	b.WriteString(" ORDER BY " + column)
	if q.Desc {
		b.WriteString(" DESC")
	} else {
		b.WriteString(" ASC")
	}
	b.WriteString(", path ASC")

	// SQLite requires a LIMIT clause to accept OFFSET; -1 means unbounded.
	if q.Limit > 0 || q.Offset > 0 {
		limit := q.Limit
		if limit <= 0 {
			limit = -1
		}
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, dbError("search", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Recent returns the most recently indexed files: the query engine with sort
// key added_at descending and no filters.
func (s *Searcher) Recent(ctx context.Context, limit int64) ([]models.FileRecord, error) {
	return s.Search(ctx, &models.SearchQuery{
		Sort:  models.SortByAdded,
		Desc:  true,
		Limit: limit,
	})
}

func validateQuery(q *models.SearchQuery) error {
	if q.MinSize != nil && q.MaxSize != nil && *q.MinSize > *q.MaxSize {
		return configErrorf("min_size %d exceeds max_size %d", *q.MinSize, *q.MaxSize)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return configErrorf("date range starts after it ends (%s > %s)",
			q.From.Format(time.RFC3339), q.To.Format(time.RFC3339))
	}
	if q.Limit < 0 {
		return configErrorf("negative limit %d", q.Limit)
	}
	if q.Offset < 0 {
		return configErrorf("negative offset %d", q.Offset)
	}
	if q.Sort != "" {
		if _, ok := sortColumns[q.Sort]; !ok {
			return configErrorf("unknown sort key %q", q.Sort)
		}
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]models.FileRecord, error) {
	var results []models.FileRecord
	for rows.Next() {
		var f models.FileRecord
		var mod, added int64
		var hash sql.NullString
		if err := rows.Scan(&f.Path, &f.Name, &f.Ext, &f.Size, &mod, &added, &hash); err != nil {
			return nil, dbError("scan row", err)
		}
		f.ModTime = time.Unix(mod, 0)
		f.AddedAt = time.Unix(added, 0)
		if hash.Valid {
			h := hash.String
			f.Hash = &h
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("read rows", err)
	}
	return results, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
