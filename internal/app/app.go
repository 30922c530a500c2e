// Package app ties the configured components of diffsentry together and
// manages their lifecycle.
package app

import (
	"log/slog"

	"github.com/diffsentry/diffsentry/internal/config"
	"github.com/diffsentry/diffsentry/internal/core"
	"github.com/diffsentry/diffsentry/internal/server"
)

// App holds the main application components.
type App struct {
	cfg        *config.Config
	server     *server.Server
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(cfg *config.Config, srv *server.Server, dispatcher core.JobDispatcher, logger *slog.Logger) *App {
	return &App{cfg: cfg, server: srv, dispatcher: dispatcher, logger: logger}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting diffsentry",
		"port", a.cfg.ServerPort,
		"environment", a.cfg.Environment,
		"provider", a.cfg.LLMProvider,
		"model", a.cfg.GeneratorModelName,
	)
	return a.server.Start()
}

// Stop shuts down the server first, so no new webhooks are accepted, then
// waits for in-flight reviews to finish.
func (a *App) Stop() error {
	a.logger.Info("shutting down diffsentry")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("diffsentry stopped")
	return nil
}
