package models

type IndexConfig struct {
	DBPath           string   `mapstructure:"db_path"`
	RootPaths        []string `mapstructure:"root_paths"`
	ExcludePaths     []string `mapstructure:"exclude_paths"`
	ComputeHash      bool     `mapstructure:"compute_hash"`
	PruneMissing     bool     `mapstructure:"prune_missing"`
	ScanWorkers      int      `mapstructure:"scan_workers"` // 0 = auto (CPU * 2)
	LogRetentionDays int      `mapstructure:"log_retention_days"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type AppConfig struct {
	Server ServerConfig `mapstructure:"server"`
	Index  IndexConfig  `mapstructure:"index"`
}
