package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jo-hoe/proteinlens/internal/database"

	"gopkg.in/yaml.v3"
)

const appDir = ".proteinlens"

type DatabaseConfig struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type ClientConfig struct {
	ServerURL      string         `yaml:"serverURL"`
	Timezone       string         `yaml:"timezone"`
	TimeoutSeconds int            `yaml:"timeoutSeconds"`
	Database       DatabaseConfig `yaml:"database"`
}

// DefaultConfigPath is ~/.proteinlens/config.yaml, or a relative path when
// the home directory is unknown
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), appDir, "config.yaml")
}

func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL:      "http://localhost:8080",
		TimeoutSeconds: 90,
		Database: DatabaseConfig{
			Type:             database.SQLiteType,
			ConnectionString: filepath.Join(homeDir(), appDir, "meals.db"),
		},
	}
}

// LoadConfig reads the client YAML file. A missing file yields the defaults.
func LoadConfig(configPath string) (*ClientConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	config.ServerURL = strings.TrimRight(config.ServerURL, "/")
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Location resolves Timezone, falling back to time.Local when unset
func (c *ClientConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func validateConfig(config *ClientConfig) error {
	if config.ServerURL == "" {
		return fmt.Errorf("serverURL must not be empty")
	}
	if config.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeoutSeconds must be positive, got %d", config.TimeoutSeconds)
	}
	if _, err := config.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", config.Timezone, err)
	}
	switch config.Database.Type {
	case database.SQLiteType, database.RedisType:
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}
	if config.Database.ConnectionString == "" {
		return fmt.Errorf("database.connectionString must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
