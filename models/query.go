package models

import "time"

// SortKey selects the column a search result is ordered by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortBySize     SortKey = "size"
	SortByModified SortKey = "modified"
	SortByAdded    SortKey = "added"
)

// SearchQuery is a set of independently optional filter clauses combined with
// logical AND, plus ordering and pagination. Zero values mean "no clause":
// empty strings, nil bounds, Limit <= 0 for no cap.
type SearchQuery struct {
	NameLike string // case-insensitive substring of the file name
	Ext      string // case-insensitive extension, with or without leading dot
	MinSize  *int64
	MaxSize  *int64
	From     *time.Time // earliest ModTime, inclusive
	To       *time.Time // latest ModTime, inclusive
	Sort     SortKey    // defaults to SortByName
	Desc     bool
	Limit    int64
	Offset   int64
}
