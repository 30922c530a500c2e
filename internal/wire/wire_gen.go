// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/diffsentry/diffsentry/internal/app"
	"github.com/diffsentry/diffsentry/internal/config"
	"github.com/diffsentry/diffsentry/internal/gh"
	"github.com/diffsentry/diffsentry/internal/jobs"
	"github.com/diffsentry/diffsentry/internal/llm"
	"github.com/diffsentry/diffsentry/internal/logger"
	"github.com/diffsentry/diffsentry/internal/review"
	"github.com/diffsentry/diffsentry/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := logger.NewLogger(provideLoggerConfig(cfg), provideLogWriter())

	clientProvider, err := gh.NewProvider(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub client provider: %w", err)
	}

	generator, err := provideGenerator(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	prompts, err := llm.NewPromptRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	synthesizer := llm.NewSynthesizer(generator, prompts, cfg.ModelTimeout, slogLogger)
	retriever := review.NewRetriever(cfg.MaxDiffBytes, cfg.DiffFetchTimeout, slogLogger)
	pipeline := review.NewPipeline(clientProvider, retriever, synthesizer, cfg.PublishTimeout, slogLogger)

	reviewJob := jobs.NewReviewJob(pipeline)
	dispatcher := jobs.NewDispatcher(reviewJob, cfg.MaxWorkers, slogLogger)

	srv := server.NewServer(cfg, dispatcher, slogLogger)
	application := app.NewApp(cfg, srv, dispatcher, slogLogger)

	cleanup := func() {}
	return application, cleanup, nil
}
