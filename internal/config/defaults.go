package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	homeDir := DefaultHomeDir()

	return &Config{
		Core: CoreConfig{
			HomeDir: homeDir,
		},
		Defaults: DefaultsConfig{
			Length: 16,
			Copy:   false,
		},
		Store: StoreConfig{
			Path: filepath.Join(homeDir, "flowerpass.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultHomeDir returns the default flowerpass home directory (~/.flowerpass).
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory when the home directory
		// cannot be determined.
		return ".flowerpass"
	}
	return filepath.Join(home, ".flowerpass")
}

// DefaultConfigPath returns the default config file path for a home directory.
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}
