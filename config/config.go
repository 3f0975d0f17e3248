// Package config loads smalljs.yaml, the optional settings file read by the
// command-line tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file Find looks for.
const FileName = "smalljs.yaml"

// Config holds interpreter settings.
type Config struct {
	Path string `yaml:"-"`

	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	MaxStackBytes int    `yaml:"max_stack_bytes"`
	HistoryFile   string `yaml:"history_file"`
	Prompt        string `yaml:"prompt"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		LogFormat:   "text",
		HistoryFile: ".smalljs_history",
		Prompt:      "smalljs> ",
	}
}

// Load parses a settings file. Keys the file leaves out keep their defaults;
// unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Find walks up from dir looking for FileName and loads the first one it
// sees. Without one it returns Default.
func Find(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Default(), nil
		}
		abs = parent
	}
}

// Write serialises cfg to path.
func Write(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.HistoryFile = strings.TrimSpace(c.HistoryFile)
}

// Validate rejects settings the tools cannot honour.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want text or json)", c.LogFormat)
	}
	if c.MaxStackBytes < 0 {
		return fmt.Errorf("max_stack_bytes must not be negative, got %d", c.MaxStackBytes)
	}
	return nil
}

// ParseLevel maps a log_level setting to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}

// Logger builds the structured logger described by the settings.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Apply installs process-wide settings. Deep recursion past MaxStackBytes
// ends the process with a fatal stack overflow, not a script failure.
func (c *Config) Apply() {
	if c.MaxStackBytes > 0 {
		debug.SetMaxStack(c.MaxStackBytes)
	}
}
