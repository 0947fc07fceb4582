// Package logging configures the process-wide zerolog output: a console
// writer on stderr plus an optional rotating file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/voxfeld/reel/internal/config"
)

const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 30
)

// Setup applies the log configuration and returns the configured logger.
// The logger also replaces the zerolog global so package-level log calls
// share the same outputs. When verbose is true the level floor is debug
// regardless of the configured level.
func Setup(cfg config.LogConfig, verbose bool) zerolog.Logger {
	level := parseLevel(cfg.Level)
	if verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// Console goes to stderr; stdout is reserved for command output.
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	writers := []io.Writer{console}
	if cfg.File != "" {
		if err := ensureLogDir(cfg.File); err == nil {
			maxSize := cfg.MaxSizeMB
			if maxSize <= 0 {
				maxSize = DefaultMaxSizeMB
			}
			fileWriter := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    maxSize,
				MaxBackups: DefaultMaxBackups,
				MaxAge:     DefaultMaxAgeDays,
			}
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        fileWriter,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
