// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"flightlog/internal/store"
)

// Config is the full server configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	Database struct {
		// Driver selects the backend: "sqlite" or "postgres".
		Driver   string               `yaml:"driver"`
		Path     string               `yaml:"path"` // sqlite file
		Postgres store.PostgresConfig `yaml:"postgres"`
	} `yaml:"database"`

	Archive struct {
		Enabled    bool                   `yaml:"enabled"`
		ClickHouse store.ClickHouseConfig `yaml:"clickhouse"`
	} `yaml:"archive"`

	Provider struct {
		// Airline stamped on every scraped candidate.
		Airline string `yaml:"airline"`
	} `yaml:"provider"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{ListenAddr: ":8080"}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = "flights.db"
	cfg.Provider.Airline = "Southwest"
	return cfg
}

// Load reads a YAML configuration file, filling unset fields with the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	return cfg, nil
}
