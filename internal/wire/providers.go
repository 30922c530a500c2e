package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/diffsentry/diffsentry/internal/app"
	"github.com/diffsentry/diffsentry/internal/config"
	"github.com/diffsentry/diffsentry/internal/gh"
	"github.com/diffsentry/diffsentry/internal/jobs"
	"github.com/diffsentry/diffsentry/internal/llm"
	"github.com/diffsentry/diffsentry/internal/logger"
	"github.com/diffsentry/diffsentry/internal/review"
	"github.com/diffsentry/diffsentry/internal/server"
)

// AppSet lists the providers that assemble the application.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	logger.NewLogger,
	gh.NewProvider,
	jobs.NewDispatcher,
	jobs.NewReviewJob,
	llm.NewPromptRenderer,
	llm.NewSynthesizer,
	review.NewRetriever,
	review.NewPipeline,
	provideGenerator,
	provideLoggerConfig,
	provideLogWriter,
)

func provideGenerator(ctx context.Context, cfg *config.Config, log *slog.Logger) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		log.Info("using Gemini generator", "model", cfg.GeneratorModelName)
		return llm.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeneratorModelName, log)
	case config.ProviderOllama:
		log.Info("using Ollama generator", "model", cfg.GeneratorModelName, "host", cfg.OllamaHost)
		return llm.NewOllamaGenerator(cfg.OllamaHost, cfg.GeneratorModelName, log)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}
}

func provideLogWriter() io.Writer {
	return os.Stdout
}
