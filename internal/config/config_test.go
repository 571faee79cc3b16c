package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
database:
  path: "/tmp/liftlog-test.db"
log:
  file: "/tmp/liftlog-test.log"
  level: "debug"
  json: true
session:
  stale_after: 6h
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/tmp/liftlog-test.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Session.StaleAfter != 6*time.Hour {
		t.Errorf("session.stale_after = %v, want 6h", cfg.Session.StaleAfter)
	}
	// unset fields keep defaults
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("log.max_backups = %d, want default 3", cfg.Log.MaxBackups)
	}
}

// TestEnvOverride verifies that LIFTLOG_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTLOG_DB", "/tmp/other.db")
	t.Setenv("LIFTLOG_LOG_LEVEL", "warn")
	t.Setenv("LIFTLOG_LOG_JSON", "false")
	t.Setenv("LIFTLOG_STALE_AFTER", "30m")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "warn" || cfg.Log.JSON {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Session.StaleAfter != 30*time.Minute {
		t.Errorf("stale_after = %v", cfg.Session.StaleAfter)
	}
	if cfg.Log.File != "/tmp/liftlog-test.log" {
		t.Errorf("log.file = %q, want YAML value", cfg.Log.File)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("LIFTLOG_STALE_AFTER", "soon")
	if _, err := Load(writeTemp(t, validYAML)); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

// TestDefaultsWithoutFile verifies a missing default config file is not an error.
func TestDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Session.StaleAfter != 12*time.Hour {
		t.Errorf("stale_after = %v, want 12h", cfg.Session.StaleAfter)
	}
	if filepath.Base(cfg.Database.Path) != "liftlog.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
}

// TestLoadMissingFile verifies that an explicit missing config file returns an error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidationBadLevel(t *testing.T) {
	_, err := Load(writeTemp(t, "log:\n  level: loud\n"))
	if err == nil {
		t.Fatal("expected validation error for log level")
	}
}

func TestValidationStaleAfter(t *testing.T) {
	_, err := Load(writeTemp(t, "session:\n  stale_after: 0s\n"))
	if err == nil {
		t.Fatal("expected validation error for zero stale_after")
	}
}

func TestParseError(t *testing.T) {
	if _, err := Load(writeTemp(t, "database: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := expandHome("~/x.db"); got != filepath.Join(home, "x.db") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("expandHome changed absolute path: %q", got)
	}
}
