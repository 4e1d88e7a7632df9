// Package logging configures slog for cclearn: human-readable diagnostics on
// stderr and a rotating JSON log file under the config directory.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB   = 1  // 1MB per file
	maxAgeDays  = 14 // Keep 2 weeks
	maxBackups  = 10
	compressOld = true
)

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs the default logger. stderr gets records at level and above;
// the log file, if logFile is set, gets everything from debug up.
// The returned closer flushes and closes the log file.
func Setup(stderr io.Writer, level string, logFile string) (io.Closer, error) {
	console := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: ParseLevel(level)})

	if logFile == "" {
		slog.SetDefault(slog.New(console))
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		slog.SetDefault(slog.New(console))
		return io.NopCloser(nil), fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSizeMB,
		MaxAge:     maxAgeDays,
		MaxBackups: maxBackups,
		Compress:   compressOld,
		LocalTime:  true,
	}
	file := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: slog.LevelDebug})

	slog.SetDefault(slog.New(fanout{console, file}))
	return rotator, nil
}

// fanout sends each record to every handler that accepts its level
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
