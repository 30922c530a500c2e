package gh

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/diffsentry/diffsentry/internal/config"
)

// ClientProvider resolves the GitHub client to use for one review. In token
// mode every review shares a single PAT-authenticated client; in App mode a
// client is built for the installation that delivered the webhook.
type ClientProvider interface {
	ClientFor(ctx context.Context, installationID int64) (Client, error)
}

type tokenProvider struct {
	client Client
}

// NewTokenProvider returns a provider that always hands out the same
// PAT-authenticated client.
func NewTokenProvider(ctx context.Context, token string, logger *slog.Logger) ClientProvider {
	return &tokenProvider{client: NewPATClient(ctx, token, logger)}
}

func (p *tokenProvider) ClientFor(_ context.Context, _ int64) (Client, error) {
	return p.client, nil
}

type appProvider struct {
	appID      int64
	privateKey []byte
	logger     *slog.Logger
}

// NewAppProvider returns a provider that authenticates as a GitHub App
// installation. The private key is read once at construction so a bad path
// fails at startup, not on the first webhook.
func NewAppProvider(cfg *config.Config, logger *slog.Logger) (ClientProvider, error) {
	privateKey, err := os.ReadFile(cfg.GitHubPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key from %s: %w", cfg.GitHubPrivateKeyPath, err)
	}
	return &appProvider{appID: cfg.GitHubAppID, privateKey: privateKey, logger: logger}, nil
}

func (p *appProvider) ClientFor(_ context.Context, installationID int64) (Client, error) {
	if installationID == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	transport, err := ghinstallation.New(http.DefaultTransport, p.appID, installationID, p.privateKey)
	if err != nil {
		return nil, fmt.Errorf("create installation transport for %d: %w", installationID, err)
	}

	client := github.NewClient(&http.Client{Transport: transport})
	return NewClient(client, p.logger), nil
}

// NewProvider selects the provider for the configured auth mode.
func NewProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ClientProvider, error) {
	switch cfg.GitHubAuthMode {
	case config.AuthModeToken:
		return NewTokenProvider(ctx, cfg.GitHubToken, logger), nil
	case config.AuthModeApp:
		return NewAppProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported GitHub auth mode: %s", cfg.GitHubAuthMode)
	}
}
