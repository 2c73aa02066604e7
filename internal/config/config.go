// Package config resolves runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted by PANELCART_BACKEND and --backend.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the settings the CLI needs to open storage and log.
type Config struct {
	DataDir  string `env:"PANELCART_DATA_DIR"`
	Backend  string `env:"PANELCART_BACKEND" envDefault:"file"`
	LogLevel string `env:"PANELCART_LOG_LEVEL" envDefault:"warn"`
}

// Load parses the environment and fills defaults that depend on the host.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.DataDir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".panelcart")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the backend name.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	switch c.Backend {
	case BackendFile, BackendBolt, BackendSQLite, BackendMemory:
		return nil
	default:
		return fmt.Errorf("invalid backend: %s (must be file, bolt, sqlite, or memory)", c.Backend)
	}
}
