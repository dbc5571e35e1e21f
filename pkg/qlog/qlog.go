// Package qlog is the process-wide structured logger used by the operator
// and cursor packages.
package qlog

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logger   *slog.Logger
	mu       sync.RWMutex
	isInited bool
)

// Config controls the global logger.
type Config struct {
	Level  slog.Level
	Output io.Writer // defaults to os.Stderr
	JSON   bool
}

// Init installs the global logger. Safe to call once at process startup;
// subsequent calls are no-ops so tests and the CLI can both call it.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if isInited {
		return
	}
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger = slog.New(h)
	isInited = true
}

// Get returns the global logger, lazily initializing it with defaults if
// Init was never called.
func Get() *slog.Logger {
	mu.RLock()
	if isInited {
		defer mu.RUnlock()
		return logger
	}
	mu.RUnlock()
	Init(Config{Level: slog.LevelInfo})
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WithOperator returns a child logger tagged with an operator name, for use
// inside an operator's Cursor construction.
func WithOperator(name string) *slog.Logger {
	return Get().With("operator", name)
}

// WithCursor returns a child logger tagged with an execution context id and
// operator name.
func WithCursor(execID, operator string) *slog.Logger {
	return Get().With("exec_id", execID, "operator", operator)
}

// WithBindings returns a child logger tagged with an execution context id,
// for logging binding reads/writes.
func WithBindings(execID string) *slog.Logger {
	return Get().With("exec_id", execID, "component", "bindings")
}
