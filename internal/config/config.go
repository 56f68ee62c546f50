package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"procwatch/internal/errkind"
)

// maxIntervalSeconds mirrors the watch loop's bound on the interval.
const maxIntervalSeconds = 24 * 60 * 60

// Config holds defaults for procwatch flags. Anything set on the command
// line wins over these.
type Config struct {
	Interval *float64 `yaml:"interval,omitempty"` // seconds; nil means the built-in default
	Precise  bool     `yaml:"precise,omitempty"`
	Debug    bool     `yaml:"debug,omitempty"`
	Shell    string   `yaml:"shell,omitempty"` // overrides $SHELL
	PTY      bool     `yaml:"pty,omitempty"`
	LogFile  string   `yaml:"log_file,omitempty"`
}

// ResolvePath finds the config file location.
// Order: PROCWATCH_CONFIG env var -> <user config dir>/procwatch/config.yaml.
func ResolvePath() (string, error) {
	if p := os.Getenv("PROCWATCH_CONFIG"); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("PROCWATCH_CONFIG: %w", err)
		}
		return abs, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "procwatch", "config.yaml"), nil
}

// Load reads the config from the resolved default location.
// If the file does not exist, it returns an empty Config with no error.
func Load() (*Config, error) {
	path, err := ResolvePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path.
// If the file does not exist, it returns an empty Config with no error.
// Unknown keys are rejected so typos do not go unnoticed.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Interval != nil && (*c.Interval < 0 || *c.Interval >= maxIntervalSeconds) {
		return fmt.Errorf("%w: invalid interval value: %g", errkind.ErrInvalidArgument, *c.Interval)
	}
	return nil
}
