package anyllm

import (
	"log/slog"
	"os"
	"sync"
)

// The adapter emits request/response records at debug level and failures at
// warn. It owns no log storage or rotation; by default records go to stderr
// at warn level and callers raise verbosity with SetLogLevel or replace the
// logger entirely with SetLogger.

var (
	logLevel slog.LevelVar

	logMu     sync.RWMutex
	pkgLogger = newDefaultLogger()
)

func init() {
	logLevel.Set(slog.LevelWarn)
}

func newDefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))
}

// SetLogLevel sets the verbosity of the package's default logger. It has no
// effect on a logger installed with SetLogger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *slog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		pkgLogger = newDefaultLogger()
		return
	}
	pkgLogger = l
}

func logger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return pkgLogger
}
