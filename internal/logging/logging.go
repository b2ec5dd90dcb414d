// Package logging configures the process-wide zerolog logger.
//
// The dashboard owns the terminal, so logs go to a file under the user
// state directory rather than stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogPath returns the log file location under the user state dir.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "farmdash", "farmdash.log"), nil
}

// New opens the log file and returns a logger writing JSON lines to it.
// The returned closer flushes and closes the file.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	lvl := parseLevel(level)
	logger := zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	return logger, f, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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
