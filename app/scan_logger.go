package app

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fsindex/models"
)

// ScanLogger writes scan progress to stdout and to a gzipped per-scan log
// file stored next to the index database.
type ScanLogger struct {
	file      *os.File
	gzWriter  *gzip.Writer
	logger    *log.Logger
	startTime time.Time
	logPath   string
	mu        sync.Mutex
}

// NewScanLogger creates the log file in the database directory and removes
// logs older than retentionDays (0 keeps everything).
func NewScanLogger(dbPath string, retentionDays int) (*ScanLogger, error) {
	dbDir := filepath.Dir(dbPath)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(dbDir, fmt.Sprintf("scan_%s.log.gz", timestamp))

	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if retentionDays > 0 {
		cleanupOldLogs(dbDir, retentionDays)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	gzWriter := gzip.NewWriter(file)
	multiWriter := io.MultiWriter(os.Stdout, gzWriter)

	sl := &ScanLogger{
		file:      file,
		gzWriter:  gzWriter,
		logger:    log.New(multiWriter, "", log.Ldate|log.Ltime),
		startTime: time.Now(),
		logPath:   logPath,
	}

	sl.Log("%s", strings.Repeat("=", 80))
	sl.Log("SCAN LOG STARTED")
	sl.Log("Database path: %s", dbPath)
	sl.Log("Log file: %s", logPath)
	sl.Log("Start time: %s", sl.startTime.Format(time.RFC3339))
	sl.Log("%s", strings.Repeat("=", 80))

	return sl, nil
}

func cleanupOldLogs(logDir string, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	matches, err := filepath.Glob(filepath.Join(logDir, "scan_*.log.gz"))
	if err != nil {
		log.Printf("Warning: failed to find old logs: %v", err)
		return
	}

	for _, logFile := range matches {
		info, err := os.Stat(logFile)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(logFile); err != nil {
				log.Printf("Warning: failed to remove old log %s: %v", logFile, err)
			}
		}
	}
}

// Log writes a formatted message to stdout and the log file.
func (sl *ScanLogger) Log(format string, args ...interface{}) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.logger.Printf(format, args...)
}

// LogSummary writes the scan outcome, errors broken down by kind.
func (sl *ScanLogger) LogSummary(summary *models.ScanSummary) {
	sl.Log("")
	sl.Log("----- SCAN SUMMARY -----")
	sl.Log("Root: %s", summary.Root)
	sl.Log("Files indexed: %d", summary.Indexed)
	sl.Log("Entries skipped: %d", summary.Skipped)
	sl.Log("Entries pruned: %d", summary.Pruned)
	for reason, count := range summary.Errors {
		sl.Log("  %s: %d", reason, count)
	}
	sl.Log("Duration: %v", summary.Duration)
}

// Close flushes and closes the log file.
func (sl *ScanLogger) Close() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.logger.Printf("Scan log closed after %v", time.Since(sl.startTime))

	if err := sl.gzWriter.Close(); err != nil {
		sl.file.Close()
		return err
	}
	return sl.file.Close()
}
