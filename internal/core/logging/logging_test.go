package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_FileGetsDebug(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var stderr bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "cclearn.log")

	closer, err := Setup(&stderr, "info", logFile)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	slog.Debug("debug detail", "files", 3)
	slog.Info("selected files", "count", 2)

	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if strings.Contains(stderr.String(), "debug detail") {
		t.Error("stderr should not include debug records at info level")
	}
	if !strings.Contains(stderr.String(), "selected files") {
		t.Errorf("stderr = %q, want info record", stderr.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"debug detail"`) {
		t.Errorf("log file = %q, want debug record", data)
	}
}

func TestSetup_NoFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var stderr bytes.Buffer
	closer, err := Setup(&stderr, "debug", "")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer closer.Close()

	slog.Debug("visible")
	if !strings.Contains(stderr.String(), "visible") {
		t.Errorf("stderr = %q, want debug record", stderr.String())
	}
}
