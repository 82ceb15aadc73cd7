// Package config loads the optional ragcli client configuration file.
package config

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration loaded from a YAML file. Zero values
// mean "not set" and leave the flag or built-in default in place.
type Config struct {
	ServerURL    string
	DBPath       string
	PollInterval time.Duration
}

// YAMLRepository loads client configuration from YAML files.
type YAMLRepository struct {
	fs fs.FS
}

// NewYAMLRepository creates a new YAML config repository.
func NewYAMLRepository(filesystem fs.FS) *YAMLRepository {
	return &YAMLRepository{fs: filesystem}
}

// GetConfig loads the client configuration from a YAML file and returns a
// validated domain model.
func (r *YAMLRepository) GetConfig(ctx context.Context, path string) (Config, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return Config{}, ctx.Err()
	}

	var cfg clientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel()
}

// clientConfig represents the YAML structure of the client configuration.
type clientConfig struct {
	ServerURL    string `yaml:"server_url"`
	DBPath       string `yaml:"db_path"`
	PollInterval string `yaml:"poll_interval"`
}

func (c clientConfig) validate() error {
	if c.ServerURL != "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("server_url %q is not a valid URL", c.ServerURL)
		}
	}

	return nil
}

func (c clientConfig) toModel() (Config, error) {
	cfg := Config{
		ServerURL: c.ServerURL,
		DBPath:    c.DBPath,
	}

	if c.PollInterval != "" {
		d, err := time.ParseDuration(c.PollInterval)
		if err != nil {
			return Config{}, fmt.Errorf("poll_interval %q is not a valid duration: %w", c.PollInterval, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("poll_interval must be positive")
		}
		cfg.PollInterval = d
	}

	return cfg, nil
}
