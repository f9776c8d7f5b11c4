package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/lpp-lang/lpp/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"INFO", logger.LevelInfo, false},
		{"", logger.LevelInfo, false},
		{"warn", logger.LevelWarn, false},
		{"warning", logger.LevelWarn, false},
		{" error ", logger.LevelError, false},
		{"verbose", logger.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: logger.LevelWarn, Format: "text", Output: &buf})

	l.Info("hidden")
	l.Warn("shown", "component", "parser")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "component=parser") {
		t.Fatalf("expected warn record with attributes, got %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: logger.LevelDebug, Format: "json", Output: &buf})

	l.Debug("parse finished", "statements", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}

	if record["msg"] != "parse finished" {
		t.Fatalf("expected msg %q, got %v", "parse finished", record["msg"])
	}
	if record["statements"] != float64(3) {
		t.Fatalf("expected statements 3, got %v", record["statements"])
	}
}

func TestDiscardDropsEverything(t *testing.T) {
	l := logger.Discard()

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Fatalf("expected level %s to be disabled", level)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := logger.DefaultConfig()

	if cfg.Level != logger.LevelInfo || cfg.Format != "text" || cfg.Output == nil {
		t.Fatalf("unexpected default config: %+v", cfg)
	}
}
