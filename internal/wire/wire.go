//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"time"

	"github.com/google/wire"

	"github.com/diffsentry/diffsentry/internal/app"
	"github.com/diffsentry/diffsentry/internal/config"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		AppSet,
		provideMaxWorkers,
		provideMaxDiffBytes,
		provideDiffTimeout,
		provideModelTimeout,
		providePublishTimeout,
	)
	return &app.App{}, nil, nil
}

func provideMaxWorkers(cfg *config.Config) int            { return cfg.MaxWorkers }
func provideMaxDiffBytes(cfg *config.Config) int          { return cfg.MaxDiffBytes }
func provideDiffTimeout(cfg *config.Config) time.Duration { return cfg.DiffFetchTimeout }
func provideModelTimeout(cfg *config.Config) time.Duration {
	return cfg.ModelTimeout
}
func providePublishTimeout(cfg *config.Config) time.Duration {
	return cfg.PublishTimeout
}
