// Package config handles loading and saving hanzitree configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the CLI and the query engine.
type Config struct {
	Database string       `mapstructure:"database" yaml:"database" validate:"required"`
	Log      LogConfig    `mapstructure:"log" yaml:"log"`
	Search   SearchConfig `mapstructure:"search" yaml:"search"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Mode  string `mapstructure:"mode" yaml:"mode" validate:"oneof=dev development prod production"`
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// SearchConfig bounds substring search results.
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit" yaml:"default_limit" validate:"gte=1,ltefield=MaxLimit"`
	MaxLimit     int `mapstructure:"max_limit" yaml:"max_limit" validate:"gte=1,lte=1000"`
}

var validate = validator.New()

// Defaults returns the configuration used when nothing is set.
func Defaults(dir string) Config {
	return Config{
		Database: filepath.Join(dir, "hanzi.db"),
		Log: LogConfig{
			Mode:  "dev",
			Level: "warn",
		},
		Search: SearchConfig{
			DefaultLimit: 20,
			MaxLimit:     50,
		},
	}
}

// SetDefaults registers Defaults(dir) with v.
func SetDefaults(v *viper.Viper, dir string) {
	d := Defaults(dir)
	v.SetDefault("database", d.Database)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("search.default_limit", d.Search.DefaultLimit)
	v.SetDefault("search.max_limit", d.Search.MaxLimit)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes cfg to a YAML file.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hanzitree"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
