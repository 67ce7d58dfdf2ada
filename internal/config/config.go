// Package config loads scaffold defaults from the optional user
// configuration file. Missing files yield the built-in defaults; CLI flags
// always take precedence over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/appforge-dev/appforge/internal/flutter"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidYAML indicates invalid YAML syntax in the config file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrInvalidConfig indicates a config value outside the allowed set.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// FileName is the user configuration file, looked up in the home directory.
const FileName = ".appforge.yaml"

// Config holds scaffold defaults.
type Config struct {
	// Org is the organization identifier passed to flutter create.
	Org string `yaml:"org"`

	// Platforms are the default target platforms.
	Platforms []string `yaml:"platforms"`

	// Device is the default launch device for flutter run.
	Device string `yaml:"device"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Org:       "com.app.template",
		Platforms: []string{"ios", "android", "web", "macos"},
		Device:    "chrome",
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Org == "" {
		return fmt.Errorf("%w: org must not be empty", ErrInvalidConfig)
	}
	if err := flutter.ValidatePlatforms(c.Platforms); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Device == "" {
		return fmt.Errorf("%w: device must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Load reads the config file at path, applying defaults for absent fields.
// A missing file is not an error; it returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads the config file from the user's home directory.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory: fall back to built-in defaults.
		return Default(), nil
	}
	return Load(filepath.Join(home, FileName))
}
