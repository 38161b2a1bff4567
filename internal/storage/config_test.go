package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/organitab/internal/storage"
)

func TestLoadConfig_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organitab", "config.json")

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != storage.BackendJSON {
		t.Errorf("expected json backend, got %q", cfg.Backend)
	}
	if len(cfg.CullExcludeDomains) != 2 {
		t.Errorf("expected default exclude domains, got %v", cfg.CullExcludeDomains)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoadConfig_ReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"backend": "sqlite", "browser": "firefox"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("ORGANITAB_LOGLEVEL", "debug")

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != storage.BackendSQLite || cfg.Browser != "firefox" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("env override not applied, got %q", cfg.LogLevel)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := storage.DefaultConfig()
	cfg.ExportDir = "/tmp/exports"

	if err := storage.SaveConfig(path, &cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ExportDir != "/tmp/exports" {
		t.Errorf("expected export dir preserved, got %q", loaded.ExportDir)
	}
}
