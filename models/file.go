package models

import "time"

// FileRecord is a single indexed filesystem path. Path is the primary key of
// the index; AddedAt is set when the path is first inserted and survives every
// later re-scan of the same path.
type FileRecord struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Ext     string    `json:"ext,omitempty"` // lowercase, without the leading dot
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	AddedAt time.Time `json:"added_at"`
	Hash    *string   `json:"hash,omitempty"` // nil when the scan that last touched this row did not hash it
}

// DuplicateGroup is a set of two or more indexed files sharing both content
// hash and size.
type DuplicateGroup struct {
	Hash  string       `json:"hash"`
	Size  int64        `json:"size"`
	Files []FileRecord `json:"files"` // ordered by path
}

// SkipReason classifies why a filesystem entry was not indexed, or why an
// indexed file is missing its requested hash.
type SkipReason string

const (
	SkipUnreadable SkipReason = "unreadable"
	SkipPermission SkipReason = "permission_denied"
	SkipNotAFile   SkipReason = "not_a_file"
	SkipExcluded   SkipReason = "excluded"
	SkipHashFailed SkipReason = "hash_failed"
)

// ScanSummary reports the outcome of one scan of a root directory. A file
// indexed without its requested hash counts under Indexed and under
// Errors[SkipHashFailed], not under Skipped.
type ScanSummary struct {
	Root     string               `json:"root"`
	Indexed  int64                `json:"indexed"`
	Skipped  int64                `json:"skipped"`
	Pruned   int64                `json:"pruned"`
	Errors   map[SkipReason]int64 `json:"errors,omitempty"`
	Duration time.Duration        `json:"duration"`
}
