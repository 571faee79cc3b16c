package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Session  SessionConfig  `yaml:"session"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type SessionConfig struct {
	// StaleAfter is how old a saved workout may be and still be resumed.
	StaleAfter time.Duration `yaml:"stale_after"`
}

// Dir is ~/.config/liftlog.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "liftlog"), nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Session: SessionConfig{StaleAfter: 12 * time.Hour},
	}
	if dir, err := Dir(); err == nil {
		cfg.Database.Path = filepath.Join(dir, "liftlog.db")
		cfg.Log.File = filepath.Join(dir, "liftlog.log")
	}
	return cfg
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides:
//
//	LIFTLOG_DB, LIFTLOG_LOG_FILE, LIFTLOG_LOG_LEVEL,
//	LIFTLOG_LOG_JSON, LIFTLOG_STALE_AFTER
//
// An empty path means DefaultPath, which may be missing. An explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locating config file: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LIFTLOG_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LIFTLOG_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("LIFTLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LIFTLOG_LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LIFTLOG_LOG_JSON: %w", err)
		}
		cfg.Log.JSON = b
	}
	if v := os.Getenv("LIFTLOG_STALE_AFTER"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LIFTLOG_STALE_AFTER: %w", err)
		}
		cfg.Session.StaleAfter = d
	}
	return nil
}

var levels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true,
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if !levels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error, fatal", c.Log.Level)
	}
	if c.Session.StaleAfter <= 0 {
		return fmt.Errorf("session.stale_after must be positive")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log rotation limits cannot be negative")
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
