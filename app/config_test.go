package app

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid config", func(t *testing.T) {
		path := writeFile(t, dir, "good.yaml", `
server:
  port: 9090
index:
  db_path: data/files.db
  root_paths:
    - /srv/share
  exclude_paths:
    - /srv/share/tmp
  compute_hash: true
  prune_missing: true
  scan_workers: 4
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Port != 9090 {
			t.Errorf("port %d, want 9090", cfg.Server.Port)
		}
		if cfg.Index.DBPath != "data/files.db" {
			t.Errorf("db_path %q", cfg.Index.DBPath)
		}
		if len(cfg.Index.RootPaths) != 1 || cfg.Index.RootPaths[0] != "/srv/share" {
			t.Errorf("root_paths %v", cfg.Index.RootPaths)
		}
		if !cfg.Index.ComputeHash || !cfg.Index.PruneMissing {
			t.Error("boolean options not parsed")
		}
		if cfg.Index.ScanWorkers != 4 {
			t.Errorf("scan_workers %d, want 4", cfg.Index.ScanWorkers)
		}
	})

	t.Run("defaults fill missing values", func(t *testing.T) {
		path := writeFile(t, dir, "minimal.yaml", `
index:
  root_paths:
    - /srv/share
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Index.DBPath == "" {
			t.Error("expected default db_path")
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", `
server:
  port: 99999
index:
  db_path: data/files.db
`)
		_, err := LoadConfig(path)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		if err == nil {
			t.Error("expected an error for a missing config file")
		}
	})
}
