package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jo-hoe/proteinlens/internal/backend/commandstructure"
	_ "github.com/jo-hoe/proteinlens/internal/backend/commands"

	"gopkg.in/yaml.v3"
)

const (
	// APIKeyEnv names the variable holding the model credential
	APIKeyEnv = "OPENAI_API_KEY"
	// placeholderAPIKey is treated like an unset credential
	placeholderAPIKey = "placeholder"
)

type OpenAIConfig struct {
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"baseURL"`
	MaxTokens      int     `yaml:"maxTokens"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
	APIKey         string  `yaml:"-"`
}

type ServiceConfig struct {
	Port     int                              `yaml:"port"`
	LogLevel string                           `yaml:"logLevel"`
	OpenAI   OpenAIConfig                     `yaml:"openai"`
	Commands []commandstructure.CommandConfig `yaml:"commands"`
}

// DefaultConfig mirrors config.yaml. Keys missing from a loaded file keep these values.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Port:     8080,
		LogLevel: "info",
		OpenAI: OpenAIConfig{
			Model:          "gpt-4o",
			MaxTokens:      1000,
			Temperature:    0.3,
			TimeoutSeconds: 60,
		},
		Commands: []commandstructure.CommandConfig{
			{Name: "PngConverterCommand", Params: map[string]any{}},
			{Name: "DownscaleCommand", Params: map[string]any{"maxWidth": 1024, "maxHeight": 1024}},
		},
	}
}

// LoadConfig loads configuration from the specified YAML file. A missing file
// yields the defaults. The API key is always taken from the environment.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("config file not found, using defaults", "path", configPath)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	config.OpenAI.APIKey = os.Getenv(APIKeyEnv)

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// HasAPIKey reports whether a usable credential is configured
func (c *ServiceConfig) HasAPIKey() bool {
	return c.OpenAI.APIKey != "" && c.OpenAI.APIKey != placeholderAPIKey
}

// SlogLevel maps the configured log level, defaulting to info
func (c *ServiceConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func validateConfig(config *ServiceConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d", config.Port)
	}
	if config.OpenAI.Model == "" {
		return fmt.Errorf("openai.model must not be empty")
	}
	if config.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("openai.maxTokens must be positive, got %d", config.OpenAI.MaxTokens)
	}
	if config.OpenAI.Temperature < 0 || config.OpenAI.Temperature > 2 {
		return fmt.Errorf("openai.temperature must be within [0, 2], got %v", config.OpenAI.Temperature)
	}
	if config.OpenAI.TimeoutSeconds <= 0 {
		return fmt.Errorf("openai.timeoutSeconds must be positive, got %d", config.OpenAI.TimeoutSeconds)
	}
	if err := validateCommands(config.Commands); err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}
	return nil
}

// validateCommands ensures every command is named and can be built
func validateCommands(commands []commandstructure.CommandConfig) error {
	for i, cmd := range commands {
		if cmd.Name == "" {
			return fmt.Errorf("command at index %d has empty name", i)
		}
	}
	_, err := commandstructure.DefaultRegistry.BuildCommands(commands)
	return err
}
