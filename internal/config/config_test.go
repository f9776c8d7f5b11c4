package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lpp-lang/lpp/internal/config"
	"github.com/lpp-lang/lpp/internal/diag"
	"github.com/lpp-lang/lpp/internal/parser"
)

const tomlConfig = `
[parser]
filename = "programa.lpp"

[diagnostics]
context_lines = 1
show_help = false

[log]
level = "debug"
format = "json"
`

const yamlConfig = `
parser:
  filename: programa.lpp
diagnostics:
  context_lines: 1
  show_help: false
log:
  level: debug
  format: json
`

func assertLoaded(t *testing.T, cfg config.Config) {
	t.Helper()

	if cfg.Parser.Filename != "programa.lpp" {
		t.Fatalf("expected filename %q, got %q", "programa.lpp", cfg.Parser.Filename)
	}
	if cfg.Diagnostics.ContextLines != 1 {
		t.Fatalf("expected context_lines 1, got %d", cfg.Diagnostics.ContextLines)
	}
	if cfg.Diagnostics.ShowHelp {
		t.Fatalf("expected show_help false")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("expected debug/json logging, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadFromString(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		cfg, err := config.LoadFromString(tomlConfig, config.FormatTOML)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLoaded(t, cfg)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := config.LoadFromString(yamlConfig, config.FormatYAML)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertLoaded(t, cfg)
	})

	t.Run("auto rejected", func(t *testing.T) {
		_, err := config.LoadFromString(tomlConfig, config.FormatAuto)
		if !errors.Is(err, config.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	for _, tt := range []struct {
		name    string
		content string
		format  config.Format
	}{
		{"toml", "[parser]\nfilename = \"a.lpp\"\n", config.FormatTOML},
		{"yaml", "parser:\n  filename: a.lpp\n", config.FormatYAML},
		{"empty yaml", "", config.FormatYAML},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadFromString(tt.content, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			def := config.Default()
			if cfg.Diagnostics != def.Diagnostics || cfg.Log != def.Log {
				t.Fatalf("expected defaults to survive, got %+v", cfg)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	if _, err := config.LoadFromString("[parser]\nfilenme = \"a.lpp\"\n", config.FormatTOML); err == nil {
		t.Fatalf("expected error for unknown TOML key")
	}

	if _, err := config.LoadFromString("parser:\n  filenme: a.lpp\n", config.FormatYAML); err == nil {
		t.Fatalf("expected error for unknown YAML key")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, tt := range []struct {
		file    string
		content string
	}{
		{"lpp.toml", tomlConfig},
		{"lpp.yaml", yamlConfig},
		{"lpp.yml", yamlConfig},
	} {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertLoaded(t, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "lpp.json")
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := config.Load(path)
		if !errors.Is(err, config.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "missing.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := config.Load("  "); err == nil {
			t.Fatalf("expected error for empty path")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("[parser\n"), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := config.Load(path)
		if err == nil || !strings.Contains(err.Error(), "TOML parse error") {
			t.Fatalf("expected TOML parse error, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"default", func(*config.Config) {}, false},
		{"negative context", func(c *config.Config) { c.Diagnostics.ContextLines = -1 }, true},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *config.Config) { c.Log.Format = "xml" }, true},
		{"json format", func(c *config.Config) { c.Log.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}

	if _, err := config.LoadFromString("[log]\nlevel = \"loud\"\n", config.FormatTOML); err == nil {
		t.Fatalf("expected LoadFromString to validate")
	}
}

func TestConfigDrivesParserAndFormatter(t *testing.T) {
	cfg, err := config.LoadFromString(tomlConfig, config.FormatTOML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var logs bytes.Buffer
	const src = "variable x 5;"

	l, err := cfg.Logger(&logs)
	if err != nil {
		t.Fatalf("unexpected logger error: %v", err)
	}

	p := parser.NewFromString(src, cfg.ParserOptions(l)...)
	p.ParseProgram()

	ds := p.Diagnostics()
	if len(ds) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(ds))
	}
	if ds[0].Span.Filename != "programa.lpp" {
		t.Fatalf("expected filename %q, got %q", "programa.lpp", ds[0].Span.Filename)
	}

	if !strings.Contains(logs.String(), `"component":"parser"`) {
		t.Fatalf("expected JSON parser logs, got %q", logs.String())
	}

	var out bytes.Buffer
	f := diag.NewFormatterWithOptions(&out, cfg.FormatterOptions())
	f.AddSource("programa.lpp", src)
	f.FormatAll(ds)

	rendered := out.String()
	if !strings.Contains(rendered, "programa.lpp:1:12") {
		t.Fatalf("expected location in output, got:\n%s", rendered)
	}
	if strings.Contains(rendered, "help:") {
		t.Fatalf("expected help to be hidden, got:\n%s", rendered)
	}
}

func TestParserOptionsWithoutSettings(t *testing.T) {
	if opts := config.Default().ParserOptions(nil); len(opts) != 0 {
		t.Fatalf("expected no options for default config, got %d", len(opts))
	}
}

func TestLoggerRejectsInvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"

	l, err := cfg.Logger(nil)
	if err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if l != nil {
		t.Fatalf("expected no logger on error")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("expected error to name the setting, got %v", err)
	}
}

func TestLoggerDefaultsToText(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Format = ""

	var buf bytes.Buffer
	l, err := cfg.Logger(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Info("ready")
	if !strings.Contains(buf.String(), "msg=ready") {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}
