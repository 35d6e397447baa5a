package app

import (
	"errors"
	"fmt"
	"io/fs"

	"fsindex/models"
)

// EntryError is a per-entry scan failure. It is carried as a value through the
// walk and folded into the scan summary; it never aborts the scan.
type EntryError struct {
	Path   string
	Reason models.SkipReason
	Err    error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Reason, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// classifyEntryError maps a filesystem error to a skip reason.
func classifyEntryError(path string, err error) *EntryError {
	reason := models.SkipUnreadable
	if errors.Is(err, fs.ErrPermission) {
		reason = models.SkipPermission
	}
	return &EntryError{Path: path, Reason: reason, Err: err}
}

// DatabaseError marks a store-level failure. Unlike per-entry errors it is
// fatal to the operation in progress.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Op: op, Err: err}
}

// ConfigError marks invalid input rejected before any work begins: a bad
// filter range, a nonexistent scan root, a malformed configuration value.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config: " + e.Msg }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
