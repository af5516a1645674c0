// Package config loads the storyteller settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"storyteller/internal/transport"
)

// Config содержит конфигурацию для движка рассказчика.
type Config struct {
	AIEndpoint  string        `envconfig:"AI_ENDPOINT" default:"https://openrouter.ai/api/v1/chat/completions"`
	AIModel     string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat"`
	AITimeout   time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	Temperature float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`

	// Identification headers required by OpenRouter-style gateways.
	AppReferer string `envconfig:"APP_REFERER" default:"https://storyteller.local"`
	AppTitle   string `envconfig:"APP_TITLE" default:"Storyteller"`

	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string
}

// Load reads configuration from the environment. The API key comes from the
// Docker-secret file when present, otherwise from AI_API_KEY; an absent key
// is not an error here — the engine reports "not configured" on use.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	key, err := readSecret("ai_api_key")
	if err != nil {
		key = strings.TrimSpace(os.Getenv("AI_API_KEY"))
	}
	cfg.AIAPIKey = key

	return &cfg, nil
}

// TransportConfig derives the per-call transport settings.
func (c *Config) TransportConfig() transport.Config {
	return transport.Config{
		Endpoint: c.AIEndpoint,
		APIKey:   c.AIAPIKey,
		Timeout:  c.AITimeout,
		Referer:  c.AppReferer,
		Title:    c.AppTitle,
	}
}

// MaskedKey returns the credential in log-safe form.
func (c *Config) MaskedKey() string {
	if c.AIAPIKey == "" {
		return "[not set]"
	}
	if len(c.AIAPIKey) <= 8 {
		return "********"
	}
	return c.AIAPIKey[:4] + "..." + c.AIAPIKey[len(c.AIAPIKey)-4:]
}

// readSecret читает секрет из файла в стандартном пути Docker Secrets.
func readSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}
