package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
core:
  home_dir: /tmp/flowerpass-test

defaults:
  length: 20
  copy: true

store:
  path: /tmp/flowerpass-test/profiles.db

logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/flowerpass-test", cfg.Core.HomeDir)
	assert.Equal(t, 20, cfg.Defaults.Length)
	assert.True(t, cfg.Defaults.Copy)
	assert.Equal(t, "/tmp/flowerpass-test/profiles.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
defaults:
  length: 24
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Defaults.Length)
	assert.Equal(t, "info", cfg.Logging.Level, "unset values keep defaults")
	assert.NotEmpty(t, cfg.Store.Path)
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewConfigLoader(NewValidator())

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithDefaults_MissingFile(t *testing.T) {
	loader := NewConfigLoader(NewValidator())

	cfg, err := loader.LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Defaults.Length)
}

func TestLoadWithDefaults_ExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("defaults:\n  length: 8\n"), 0644))

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.LoadWithDefaults(configPath)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Defaults.Length)
}

func TestLoadInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("defaults:\n  length: 64\n"), 0644))

	loader := NewConfigLoader(NewValidator())
	_, err := loader.Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("defaults:\n  length: 8\n"), 0644))
	t.Setenv("FLOWERPASS_DEFAULTS_LENGTH", "30")

	loader := NewConfigLoader(NewValidator())
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Defaults.Length)
}

func TestLoadMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("defaults: [not a map\n"), 0644))

	loader := NewConfigLoader(NewValidator())
	_, err := loader.Load(configPath)
	assert.Error(t, err)
}
