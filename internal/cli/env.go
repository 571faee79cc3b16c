package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sadopc/liftlog/internal/config"
	"github.com/sadopc/liftlog/internal/logging"
	"github.com/sadopc/liftlog/internal/store"
	"github.com/sadopc/liftlog/internal/tracker"
)

// env is everything a command needs, opened from config.
type env struct {
	cfg     *config.Config
	store   *store.Store
	tracker *tracker.Tracker
	logs    io.Closer
}

// openEnv loads config, sets up logging and opens the database. CLI commands
// pass verbose to also log to stdout; the TUI never does.
func openEnv(verbose bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logs := logging.Setup(logging.SetupParams{
		FileName:   cfg.Log.File,
		ToStdout:   verbose,
		Level:      cfg.Log.Level,
		FormatJSON: cfg.Log.JSON,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logs.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s, err := store.New(cfg.Database.Path)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	tr, err := tracker.New(tracker.Options{
		KV:         s,
		StaleAfter: cfg.Session.StaleAfter,
	})
	if err != nil {
		s.Close()
		logs.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"component": "cli",
		"db":        cfg.Database.Path,
	}).Debug("environment opened")

	return &env{cfg: cfg, store: s, tracker: tr, logs: logs}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		logrus.WithError(err).Warn("close database")
	}
	e.logs.Close()
}
