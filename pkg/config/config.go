package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the full service configuration. Values come from defaults
// overridden by WORKBENCH_-prefixed environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Knowledge KnowledgeConfig `koanf:"knowledge"`
	Chart     ChartConfig     `koanf:"chart"`
	Model     ModelConfig     `koanf:"model"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"gte=1,lte=65535"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// KnowledgeConfig covers both the in-process snapshot and the client used by
// the interpretation engine to reach the knowledge base over HTTP.
type KnowledgeConfig struct {
	BaseURL       string        `koanf:"base_url"       validate:"omitempty,url"`
	SnapshotPath  string        `koanf:"snapshot_path"  validate:"required"`
	Timeout       time.Duration `koanf:"timeout"`
	RetryAttempts int           `koanf:"retry_attempts" validate:"gte=0"`
	RetryBackoff  time.Duration `koanf:"retry_backoff"`
}

// ChartConfig covers the ephemeris provider and the chart collaborator
// client. The timeout is deliberately long: external ephemeris computation is
// slow.
type ChartConfig struct {
	BaseURL    string        `koanf:"base_url"    validate:"omitempty,url"`
	APIKey     string        `koanf:"api_key"     validate:"required_with=BaseURL"`
	ServiceURL string        `koanf:"service_url" validate:"omitempty,url"`
	Timeout    time.Duration `koanf:"timeout"`
}

type ModelConfig struct {
	Provider    string  `koanf:"provider"    validate:"omitempty,oneof=openai"`
	APIKey      string  `koanf:"api_key"     validate:"required"`
	Name        string  `koanf:"name"        validate:"required"`
	Temperature float64 `koanf:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `koanf:"max_tokens"  validate:"gte=0"`
}

// Default returns the configuration used when no overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8003,
		},
		Log: LogConfig{
			Level: "info",
		},
		Knowledge: KnowledgeConfig{
			SnapshotPath:  "knowledge_base/first_order.json",
			Timeout:       5 * time.Second,
			RetryAttempts: 3,
			RetryBackoff:  time.Second,
		},
		Chart: ChartConfig{
			Timeout: 30 * time.Second,
		},
		Model: ModelConfig{
			Provider:    "openai",
			Name:        "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   500,
		},
	}
}

var validate = validator.New()

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
