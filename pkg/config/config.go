/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/logger"
)

// ErrConfigNotFound is returned by LoadConfig when the file does not exist.
var ErrConfigNotFound = errors.New("config file does not exist")

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the sarmeta configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Codec   Codec   `yaml:"codec"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Codec contains record codec settings
type Codec struct {
	ByteOrder       string `yaml:"byte_order"`
	StrictText      bool   `yaml:"strict_text"`
	MaxTableEntries int    `yaml:"max_table_entries"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// Metrics contains metrics configuration
type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Codec: Codec{
			ByteOrder:       "big",
			StrictText:      false,
			MaxTableEntries: codec.DefaultMaxTableEntries,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Settings absent
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrConfigNotFound, "%s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, errors.Wrap(err, "invalid config path")
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate checks every setting and reports the first invalid one.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.Wrap(ErrInvalidConfig, "data_dir is empty")
	}
	if _, err := c.ByteOrder(); err != nil {
		return errors.Mark(errors.Wrap(err, "codec.byte_order"), ErrInvalidConfig)
	}
	if c.Codec.MaxTableEntries < 0 {
		return errors.Wrapf(ErrInvalidConfig, "codec.max_table_entries is negative: %d", c.Codec.MaxTableEntries)
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.Mark(errors.Wrap(err, "logging.level"), ErrInvalidConfig)
	}
	return nil
}

// ByteOrder returns the configured default byte order.
func (c *Config) ByteOrder() (endian.Order, error) {
	return endian.ParseOrder(c.Codec.ByteOrder)
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (logger.LogLevel, error) {
	return logger.ParseLevel(c.Logging.Level)
}

// BootstrapConfig writes a default configuration if none exists yet
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, errors.Wrap(err, "failed to save bootstrap config")
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./sarmeta.yaml"
	}

	// For Linux/macOS, use ~/.config/sarmeta/config.yaml
	configDir := filepath.Join(homeDir, ".config", "sarmeta")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
