package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "finchat.log")

	logger, err := NewFile(path, "info")
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	logger.Debug("dropped")
	logger.Info("quote fetched", zap.String("symbol", "AAPL"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line above debug, got %d: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "quote fetched" || entry["symbol"] != "AAPL" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry should carry a time field")
	}
}

func TestNewFile_InvalidLevel(t *testing.T) {
	if _, err := NewFile(filepath.Join(t.TempDir(), "x.log"), "shout"); err == nil {
		t.Error("NewFile() should reject an unknown level")
	}
}

func TestNew(t *testing.T) {
	t.Run("no path is a no-op logger", func(t *testing.T) {
		logger, err := New(Options{})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Error("expected a no-op logger")
		}
	})

	t.Run("verbose logs debug to console", func(t *testing.T) {
		logger, err := New(Options{Verbose: true, Path: filepath.Join(t.TempDir(), "unused.log")})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("verbose logger should enable debug")
		}
	})

	t.Run("bad level falls back to no-op", func(t *testing.T) {
		logger, err := New(Options{Path: filepath.Join(t.TempDir(), "f.log"), Level: "nope"})
		if err == nil {
			t.Error("New() should report the bad level")
		}
		if logger == nil {
			t.Fatal("New() should still return a logger")
		}
	})
}
