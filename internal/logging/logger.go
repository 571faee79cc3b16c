package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	FileName   string
	ToStdout   bool
	Level      string
	FormatJSON bool
	MaxSizeMB  int
	MaxBackups int
}

// Setup configures the global logrus logger. With no file and no stdout the
// output is discarded, so the TUI's alt screen stays clean.
func Setup(params SetupParams) io.Closer {
	if params.FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: !params.ToStdout, FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.Level))

	if params.FileName == "" {
		if params.ToStdout {
			logrus.SetOutput(os.Stdout)
		} else {
			logrus.SetOutput(io.Discard)
		}
		return nopCloser{}
	}

	if !strings.HasSuffix(params.FileName, ".log") {
		params.FileName += ".log"
	}
	_ = os.MkdirAll(filepath.Dir(params.FileName), 0o755)

	maxSize := params.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 5
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.FileName,
		MaxSize:    maxSize, // megabytes
		MaxBackups: params.MaxBackups,
		LocalTime:  true,
		Compress:   true,
	}

	if params.ToStdout {
		logrus.SetOutput(NewCombinedWriter(os.Stdout, lumberJackLogger))
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
	return lumberJackLogger
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
