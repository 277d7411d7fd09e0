package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestConfigFromDefaults(t *testing.T) {
	v := viper.New()
	v.Set("path", "/tmp/timebox")
	v.Set("backend", "SQLite")
	v.Set("language", "de")
	v.Set("log.level", "debug")
	v.Set("log.encoding", "json")

	cfg, err := configFrom(v)
	if err != nil {
		t.Fatalf("configFrom: %v", err)
	}
	if cfg.BasePath() != "/tmp/timebox" || cfg.Backend() != BackendSQLite {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.Language() != "de" || cfg.LogLevel() != "debug" || cfg.LogEncoding() != "json" {
		t.Fatalf("cfg = %#v", cfg)
	}
}

func TestConfigFromRejectsBackend(t *testing.T) {
	v := viper.New()
	v.Set("path", "/tmp/x")
	v.Set("backend", "postgres")
	if _, err := configFrom(v); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := "path: " + filepath.Join(dir, "days") + "\nbackend: sqlite\nlanguage: sr\n"
	if err := os.WriteFile(filepath.Join(dir, ".timebox.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TIMEBOX_CONFIG_PATH", dir)
	t.Setenv("TIMEBOX_LOG_LEVEL", "error")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "days") || cfg.Backend() != BackendSQLite || cfg.Language() != "sr" {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.LogLevel() != "error" {
		t.Fatalf("env override ignored: %q", cfg.LogLevel())
	}
}
