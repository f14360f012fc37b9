package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/woozymasta/geocalc"
	"gopkg.in/yaml.v3"
)

// configEnv overrides the default config path.
const configEnv = "GEOCALC_CONFIG"

// defaultHistoryLimit matches the size of the result history kept by the REPL.
const defaultHistoryLimit = 150

// Config holds CLI settings loaded from YAML.
type Config struct {
	AngleMode    string `yaml:"angle_mode"`    // deg or rad
	HistoryFile  string `yaml:"history_file"`  // Readline input history, empty to disable
	LogLevel     string `yaml:"log_level"`     // zerolog level name
	Precision    int    `yaml:"precision"`     // Significant digits of results
	MaxDepth     int    `yaml:"max_depth"`     // Parser nesting limit
	MaxInput     int    `yaml:"max_input"`     // Input length limit in characters
	HistoryLimit int    `yaml:"history_limit"` // Result history entries kept by the REPL
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		AngleMode:    geocalc.Degrees.String(),
		LogLevel:     zerolog.InfoLevel.String(),
		Precision:    geocalc.DefaultPrecision,
		MaxDepth:     geocalc.DefaultMaxDepth,
		MaxInput:     geocalc.DefaultMaxInputLen,
		HistoryLimit: defaultHistoryLimit,
	}
}

// geocalcHomeDir returns ~/.geocalc, or an empty string when home is unknown.
func geocalcHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".geocalc")
}

// LoadConfig reads the config from path, $GEOCALC_CONFIG or
// ~/.geocalc/config.yaml, in that order. A missing file in the home
// directory yields the defaults; an explicitly named file must exist.
// Keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(configEnv)
	}

	explicit := path != ""
	if !explicit {
		home := geocalcHomeDir()
		if home == "" {
			return cfg, nil
		}
		path = filepath.Join(home, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: invalid YAML in %s: %w", path, err)
	}

	cfg.HistoryFile = expandHome(cfg.HistoryFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, ok := geocalc.ParseAngleMode(c.AngleMode); !ok {
		return fmt.Errorf("config: invalid angle_mode %q", c.AngleMode)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Precision < 1 || c.Precision > 17 {
		return fmt.Errorf("config: precision %d is out of range 1..17", c.Precision)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("config: max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.MaxInput < 1 {
		return fmt.Errorf("config: max_input must be positive, got %d", c.MaxInput)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative, got %d", c.HistoryLimit)
	}

	return nil
}

// EvalOptions converts the config into library options.
func (c Config) EvalOptions() geocalc.EvalOptions {
	mode, _ := geocalc.ParseAngleMode(c.AngleMode)

	return geocalc.EvalOptions{
		Parse:     geocalc.ParseOptions{MaxDepth: c.MaxDepth, MaxInputLen: c.MaxInput},
		Format:    geocalc.FormatOptions{Precision: c.Precision},
		AngleMode: mode,
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
