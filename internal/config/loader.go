package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path.
// Returns an error if the file doesn't exist or cannot be parsed.
// Environment variables with the FLOWERPASS_ prefix override file values
// (e.g. FLOWERPASS_DEFAULTS_LENGTH overrides defaults.length).
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDerivedDefaults(cfg)

	if err := l.validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration with
// environment overrides applied.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		v := newViper()

		cfg := DefaultConfig()
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
		}

		applyDerivedDefaults(cfg)

		if err := l.validator.Validate(cfg); err != nil {
			return nil, fmt.Errorf("default configuration validation failed: %w", err)
		}
		return cfg, nil
	}

	return l.Load(path)
}

// newViper creates a viper instance with environment binding configured.
// Keys are bound explicitly so that environment overrides survive
// Unmarshal even when the key is absent from the config file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FLOWERPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"core.home_dir",
		"defaults.length",
		"defaults.copy",
		"store.path",
		"logging.level",
		"logging.format",
	} {
		// BindEnv only errors on an empty key.
		_ = v.BindEnv(key)
	}
	return v
}

// applyDerivedDefaults fills in values that depend on other settings,
// like the store path living under the home directory.
func applyDerivedDefaults(cfg *Config) {
	if cfg.Core.HomeDir == "" {
		cfg.Core.HomeDir = DefaultHomeDir()
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(cfg.Core.HomeDir, "flowerpass.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
