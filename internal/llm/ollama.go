package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaGenerator calls a local Ollama server. Local models can be slow to
// first token, so the HTTP client carries generous transport timeouts; the
// per-call deadline still comes from the caller's context.
type OllamaGenerator struct {
	client *api.Client
	model  string
	logger *slog.Logger
}

// NewOllamaGenerator creates an Ollama-backed generator for the given model.
func NewOllamaGenerator(host, model string, logger *slog.Logger) (*OllamaGenerator, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}

	return &OllamaGenerator{
		client: api.NewClient(base, httpClient),
		model:  model,
		logger: logger,
	}, nil
}

// Generate performs one non-streaming completion call.
func (o *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var out strings.Builder
	received := false
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		received = true
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		o.logger.Error("ollama completion call failed", "model", o.model, "error", err)
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if !received {
		return "", fmt.Errorf("%w: no completion returned", ErrInvalidModelResponse)
	}

	return out.String(), nil
}
