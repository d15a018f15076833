// Package logging sets up the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"docmapper/internal/config"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog level.
// Unknown names yield INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to w.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.Source,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Init installs a stderr logger as the global and slog default logger.
func Init(cfg config.LogConfig) *slog.Logger {
	l := New(cfg, os.Stderr)

	mu.Lock()
	logger = l
	mu.Unlock()

	slog.SetDefault(l)

	return l
}

// Get returns the global logger, initializing it with defaults if needed.
func Get() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if l != nil {
		return l
	}

	return Init(config.Default().Log)
}
