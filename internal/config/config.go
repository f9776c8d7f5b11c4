// Package config loads parser, diagnostic and logging settings from TOML or
// YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lpp-lang/lpp/internal/diag"
	"github.com/lpp-lang/lpp/internal/logger"
	"github.com/lpp-lang/lpp/internal/parser"
)

// ErrUnsupportedFormat is returned when a file extension or Format value
// names neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto detects the format from the file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config is the full set of front-end settings.
type Config struct {
	Parser      ParserConfig      `toml:"parser" yaml:"parser"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics"`
	Log         LogConfig         `toml:"log" yaml:"log"`
}

// ParserConfig configures parser construction.
type ParserConfig struct {
	// Filename is attached to every span the parser reports.
	Filename string `toml:"filename" yaml:"filename"`
}

// DiagnosticsConfig configures the diagnostic formatter.
type DiagnosticsConfig struct {
	ContextLines int  `toml:"context_lines" yaml:"context_lines"`
	ShowHelp     bool `toml:"show_help" yaml:"show_help"`
}

// LogConfig configures the logger handed to the parser.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	fo := diag.DefaultFormatterOptions()
	return Config{
		Diagnostics: DiagnosticsConfig{
			ContextLines: fo.ContextLines,
			ShowHelp:     fo.ShowHelp,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path, picking the decoder from its extension.
// Keys missing from the file keep their Default values.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, errors.New("config file path cannot be empty")
	}

	format := detectFormat(path)
	if format == FormatAuto {
		return Config{}, fmt.Errorf("config file %s: %w", path, ErrUnsupportedFormat)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseContent(content, format)
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromString decodes content in the given format. FormatAuto is not
// accepted because there is no extension to detect from.
func LoadFromString(content string, format Format) (Config, error) {
	return parseContent([]byte(content), format)
}

// detectFormat returns FormatAuto when the extension is not recognised.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// parseContent decodes onto Default() and validates the result. Unknown keys
// are rejected in both formats.
func parseContent(content []byte, format Format) (Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("TOML parse error: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("format %s: %w", format, ErrUnsupportedFormat)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Diagnostics.ContextLines < 0 {
		return fmt.Errorf("diagnostics.context_lines must not be negative, got %d", c.Diagnostics.ContextLines)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	return nil
}

// ParserOptions converts the parser settings into parser options. A nil
// logger leaves the parser's default in place.
func (c Config) ParserOptions(l *slog.Logger) []parser.Option {
	var opts []parser.Option
	if c.Parser.Filename != "" {
		opts = append(opts, parser.WithFilename(c.Parser.Filename))
	}
	if l != nil {
		opts = append(opts, parser.WithLogger(l))
	}
	return opts
}

// Logger builds a logger from the log settings, starting from
// logger.DefaultConfig. A nil out keeps the default stderr output.
func (c Config) Logger(out io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	cfg := logger.DefaultConfig()
	cfg.Level = level
	if c.Log.Format != "" {
		cfg.Format = c.Log.Format
	}
	if out != nil {
		cfg.Output = out
	}

	return logger.New(cfg), nil
}

// FormatterOptions converts the diagnostic settings for diag.NewFormatterWithOptions.
func (c Config) FormatterOptions() diag.FormatterOptions {
	return diag.FormatterOptions{
		ContextLines: c.Diagnostics.ContextLines,
		ShowHelp:     c.Diagnostics.ShowHelp,
	}
}
