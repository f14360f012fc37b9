package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geocalc"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	opt := cfg.EvalOptions()
	assert.Equal(t, geocalc.Degrees, opt.AngleMode)
	assert.Equal(t, geocalc.DefaultPrecision, opt.Format.Precision)
	assert.Equal(t, geocalc.DefaultMaxDepth, opt.Parse.MaxDepth)
	assert.Equal(t, geocalc.DefaultMaxInputLen, opt.Parse.MaxInputLen)
	assert.Equal(t, 150, cfg.HistoryLimit)
}

func TestLoadConfigMissingHomeFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigHomeFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".geocalc", "config.yaml"), `
angle_mode: radians
precision: 6
max_depth: 32
history_limit: 10
history_file: ~/.geocalc/history
`)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "radians", cfg.AngleMode)
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, filepath.Join(home, ".geocalc", "history"), cfg.HistoryFile)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, geocalc.DefaultMaxInputLen, cfg.MaxInput)
	assert.Equal(t, "info", cfg.LogLevel)

	opt := cfg.EvalOptions()
	assert.Equal(t, geocalc.Radians, opt.AngleMode)
	assert.Equal(t, 32, opt.Parse.MaxDepth)
}

func TestLoadConfigEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "env.yaml")
	writeFile(t, path, "log_level: debug\n")
	t.Setenv(configEnv, path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	// An explicit path takes precedence over the environment.
	other := filepath.Join(home, "other.yaml")
	writeFile(t, other, "log_level: warn\n")
	cfg, err = LoadConfig(other)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv(configEnv, filepath.Join(home, "missing.yaml"))
	_, err = LoadConfig("")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "empty.yaml")
	writeFile(t, path, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	home := isolate(t)

	tests := map[string]string{
		"unknown key":   "colour_mode: rad\n",
		"bad yaml":      "precision: [1\n",
		"bad type":      "precision: many\n",
		"angle mode":    "angle_mode: grad\n",
		"precision":     "precision: 0\n",
		"max depth":     "max_depth: -1\n",
		"max input":     "max_input: 0\n",
		"history limit": "history_limit: -5\n",
		"log level":     "log_level: chatty\n",
	}

	for name, data := range tests {
		path := filepath.Join(home, "bad.yaml")
		writeFile(t, path, data)

		_, err := LoadConfig(path)
		assert.Error(t, err, name)
		if err != nil {
			assert.Contains(t, err.Error(), "config:", name)
		}
	}
}
