package models

import "time"

type ExtensionStats struct {
	Extension string `json:"extension"`
	Count     int64  `json:"count"`
	Size      int64  `json:"size"`
}

type IndexStats struct {
	TotalFiles    int64            `json:"total_files"`
	HashedFiles   int64            `json:"hashed_files"`
	TotalSize     int64            `json:"total_size"`
	AvgFileSize   int64            `json:"avg_file_size"`
	OldestFile    time.Time        `json:"oldest_file"`
	NewestFile    time.Time        `json:"newest_file"`
	LastScan      time.Time        `json:"last_scan"`
	LargestFiles  []FileRecord     `json:"largest_files,omitempty"`
	TopExtensions []ExtensionStats `json:"top_extensions,omitempty"`
	TopExtBySize  []ExtensionStats `json:"top_ext_by_size,omitempty"`
}
