package app

import (
	"fmt"

	"fsindex/models"

	"github.com/spf13/viper"
)

func LoadConfig(path string) (*models.AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("index.db_path", "data/index.db")
	v.SetDefault("server.port", 8080)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *models.AppConfig) error {
	if cfg.Index.DBPath == "" {
		return configErrorf("index.db_path must not be empty")
	}
	if cfg.Index.ScanWorkers < 0 {
		return configErrorf("index.scan_workers must not be negative")
	}
	if cfg.Index.LogRetentionDays < 0 {
		return configErrorf("index.log_retention_days must not be negative")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return configErrorf("server.port %d out of range", cfg.Server.Port)
	}
	return nil
}
