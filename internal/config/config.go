package config

// Config is the root configuration for flowerpass.
type Config struct {
	Core     CoreConfig     `mapstructure:"core" yaml:"core" validate:"required"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CoreConfig contains core application settings.
type CoreConfig struct {
	HomeDir string `mapstructure:"home_dir" yaml:"home_dir"`
}

// DefaultsConfig contains derivation defaults applied when a command or
// site profile does not override them.
type DefaultsConfig struct {
	Length int  `mapstructure:"length" yaml:"length" validate:"min=2,max=32"`
	Copy   bool `mapstructure:"copy" yaml:"copy"`
}

// StoreConfig contains site profile store configuration.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
