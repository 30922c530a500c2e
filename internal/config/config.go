// Package config loads and validates process configuration from the
// environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// GitHub auth modes for outbound API calls.
const (
	AuthModeToken = "token"
	AuthModeApp   = "app"
)

// Generator providers.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds the application's configuration values. It is read-only after
// LoadConfig returns; invocations share nothing else.
type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	LogFormat   string

	GitHubWebhookSecret  string
	GitHubAuthMode       string
	GitHubToken          string
	GitHubAppID          int64
	GitHubPrivateKeyPath string

	LLMProvider        string
	GeminiAPIKey       string
	GeneratorModelName string
	OllamaHost         string

	DiffFetchTimeout time.Duration
	ModelTimeout     time.Duration
	PublishTimeout   time.Duration
	MaxDiffBytes     int
	MaxWorkers       int
}

// Production reports whether the process claims to run in production. The
// webhook secret is mandatory there; signature checks fail closed.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets defaults, and validates required fields. Validation errors here are
// the startup half of the ConfigurationError outcome: the operator has to
// fix them, nothing is retried.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "production")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("GITHUB_AUTH_MODE", AuthModeToken)
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/diffsentry-app.private-key.pem")
	viper.SetDefault("LLM_PROVIDER", ProviderGemini)
	viper.SetDefault("GENERATOR_MODEL_NAME", "gemini-2.5-flash")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("DIFF_FETCH_TIMEOUT", "10s")
	viper.SetDefault("MODEL_TIMEOUT", "45s")
	viper.SetDefault("PUBLISH_TIMEOUT", "10s")
	viper.SetDefault("MAX_DIFF_BYTES", 100_000)
	viper.SetDefault("MAX_WORKERS", 5)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("failed to read .env file, continuing with environment", "error", err)
		}
	}

	cfg := &Config{
		ServerPort:           viper.GetString("SERVER_PORT"),
		Environment:          viper.GetString("ENVIRONMENT"),
		LogLevel:             viper.GetString("LOG_LEVEL"),
		LogFormat:            viper.GetString("LOG_FORMAT"),
		GitHubWebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
		GitHubAuthMode:       viper.GetString("GITHUB_AUTH_MODE"),
		GitHubToken:          viper.GetString("GITHUB_TOKEN"),
		GitHubAppID:          viper.GetInt64("GITHUB_APP_ID"),
		GitHubPrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
		LLMProvider:          viper.GetString("LLM_PROVIDER"),
		GeminiAPIKey:         viper.GetString("GEMINI_API_KEY"),
		GeneratorModelName:   viper.GetString("GENERATOR_MODEL_NAME"),
		OllamaHost:           viper.GetString("OLLAMA_HOST"),
		DiffFetchTimeout:     viper.GetDuration("DIFF_FETCH_TIMEOUT"),
		ModelTimeout:         viper.GetDuration("MODEL_TIMEOUT"),
		PublishTimeout:       viper.GetDuration("PUBLISH_TIMEOUT"),
		MaxDiffBytes:         viper.GetInt("MAX_DIFF_BYTES"),
		MaxWorkers:           viper.GetInt("MAX_WORKERS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for required fields. A missing
// webhook secret is fatal in production and a warning everywhere else.
func (c *Config) Validate() error {
	if c.GitHubWebhookSecret == "" {
		if c.Production() {
			return fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set in production")
		}
		slog.Warn("GITHUB_WEBHOOK_SECRET is not set, webhook signatures will not be verified",
			"environment", c.Environment)
	}

	switch c.GitHubAuthMode {
	case AuthModeToken:
		if c.GitHubToken == "" {
			return fmt.Errorf("GITHUB_TOKEN must be set for auth mode %q", AuthModeToken)
		}
	case AuthModeApp:
		if c.GitHubAppID == 0 {
			return fmt.Errorf("GITHUB_APP_ID must be set for auth mode %q", AuthModeApp)
		}
		if c.GitHubPrivateKeyPath == "" {
			return fmt.Errorf("GITHUB_PRIVATE_KEY_PATH must be set for auth mode %q", AuthModeApp)
		}
	default:
		return fmt.Errorf("unsupported GitHub auth mode: %s", c.GitHubAuthMode)
	}

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for provider %q", ProviderGemini)
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("OLLAMA_HOST must be set for provider %q", ProviderOllama)
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}

	if c.DiffFetchTimeout <= 0 || c.ModelTimeout <= 0 || c.PublishTimeout <= 0 {
		return fmt.Errorf("all stage timeouts must be positive")
	}
	if c.MaxDiffBytes <= 0 {
		return fmt.Errorf("MAX_DIFF_BYTES must be positive")
	}

	return nil
}
