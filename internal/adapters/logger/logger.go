// Package logger implements ports.Logger on log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/forma/internal/core/ports"
)

// Logger writes pretty lines or JSON records. Records go to stderr unless
// redirected so stdout stays free for protocol traffic and exported files.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	out      io.Writer
	level    slog.Level
	jsonMode bool
}

var _ ports.Logger = (*Logger)(nil)

// New creates a pretty Logger on stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr, slog.LevelInfo)
}

// NewWithWriter creates a pretty Logger on w at level.
func NewWithWriter(w io.Writer, level slog.Level) *Logger {
	l := &Logger{out: w, level: level}
	l.rebuild()
	return l
}

// rebuild swaps the handler; callers hold mu or own l exclusively.
func (l *Logger) rebuild() {
	if l.out == nil {
		l.out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.out, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.out, opts))
}

// SetOutput redirects subsequent records to w. A nil writer means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
}

// SetJSON switches between JSON records and pretty lines.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. Pretty output spells out the cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
