// Package config loads deckctl settings from an optional YAML file and
// DECKCTL_* environment variables. Environment values override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvDatabase = "DECKCTL_DB"
	EnvCaller   = "DECKCTL_CALLER"
	EnvFormat   = "DECKCTL_FORMAT"
	EnvLogLevel = "DECKCTL_LOG_LEVEL"
)

// Config holds deckctl settings.
type Config struct {
	// Database is the path to the SQLite database.
	Database string `yaml:"database"`

	// Caller is the authenticated identity the host attaches to mutations.
	Caller string `yaml:"caller"`

	// Format is "text" or "json".
	Format string `yaml:"format"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Database: "deckctl.db",
		Format:   "text",
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path is
// non-empty), then environment overrides. A missing file is an error only
// when path was given explicitly.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	c.Database = envOr(EnvDatabase, c.Database)
	c.Caller = envOr(EnvCaller, c.Caller)
	c.Format = envOr(EnvFormat, c.Format)
	c.LogLevel = envOr(EnvLogLevel, c.LogLevel)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path must not be empty")
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c Config) Level() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

// ParseLogLevel maps a level name to slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
