package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		ServerPort:          "8080",
		Environment:         "production",
		GitHubWebhookSecret: "shhh",
		GitHubAuthMode:      AuthModeToken,
		GitHubToken:         "ghp_test",
		LLMProvider:         ProviderGemini,
		GeminiAPIKey:        "AIza-test",
		GeneratorModelName:  "gemini-2.5-flash",
		DiffFetchTimeout:    10 * time.Second,
		ModelTimeout:        45 * time.Second,
		PublishTimeout:      10 * time.Second,
		MaxDiffBytes:        100_000,
		MaxWorkers:          5,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid token mode",
			mutate: func(*Config) {},
		},
		{
			name: "missing webhook secret in production",
			mutate: func(c *Config) {
				c.GitHubWebhookSecret = ""
			},
			wantErr: true,
		},
		{
			name: "missing webhook secret in development is allowed",
			mutate: func(c *Config) {
				c.Environment = "development"
				c.GitHubWebhookSecret = ""
			},
		},
		{
			name: "token mode without token",
			mutate: func(c *Config) {
				c.GitHubToken = ""
			},
			wantErr: true,
		},
		{
			name: "app mode requires app id",
			mutate: func(c *Config) {
				c.GitHubAuthMode = AuthModeApp
				c.GitHubAppID = 0
				c.GitHubPrivateKeyPath = "key.pem"
			},
			wantErr: true,
		},
		{
			name: "valid app mode",
			mutate: func(c *Config) {
				c.GitHubAuthMode = AuthModeApp
				c.GitHubAppID = 12345
				c.GitHubPrivateKeyPath = "key.pem"
			},
		},
		{
			name: "unknown auth mode",
			mutate: func(c *Config) {
				c.GitHubAuthMode = "basic"
			},
			wantErr: true,
		},
		{
			name: "gemini provider without api key",
			mutate: func(c *Config) {
				c.GeminiAPIKey = ""
			},
			wantErr: true,
		},
		{
			name: "ollama provider without host",
			mutate: func(c *Config) {
				c.LLMProvider = ProviderOllama
				c.OllamaHost = ""
			},
			wantErr: true,
		},
		{
			name: "valid ollama provider",
			mutate: func(c *Config) {
				c.LLMProvider = ProviderOllama
				c.OllamaHost = "http://localhost:11434"
				c.GeminiAPIKey = ""
			},
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.LLMProvider = "bard"
			},
			wantErr: true,
		},
		{
			name: "zero diff timeout",
			mutate: func(c *Config) {
				c.DiffFetchTimeout = 0
			},
			wantErr: true,
		},
		{
			name: "negative model timeout",
			mutate: func(c *Config) {
				c.ModelTimeout = -time.Second
			},
			wantErr: true,
		},
		{
			name: "zero max diff bytes",
			mutate: func(c *Config) {
				c.MaxDiffBytes = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Production(t *testing.T) {
	cfg := validConfig()
	if !cfg.Production() {
		t.Error("expected production environment")
	}
	cfg.Environment = "development"
	if cfg.Production() {
		t.Error("expected non-production environment")
	}
}
