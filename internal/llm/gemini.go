package llm

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini API through the official genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiGenerator creates a Gemini-backed generator for the given model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model, logger: logger}, nil
}

// Generate performs one completion call and validates the response shape.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	})
	if err != nil {
		g.logger.Error("gemini completion call failed", "model", g.model, "error", err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	return extractText(resp)
}

// extractText validates every nesting level of a Gemini response before
// trusting it: a non-empty candidate list, a present content block, and a
// present first text part. Any missing level is reported as an invalid model
// response instead of panicking on a nil dereference.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidModelResponse)
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", ErrInvalidModelResponse)
	}
	if len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", fmt.Errorf("%w: content has no text parts", ErrInvalidModelResponse)
	}

	return candidate.Content.Parts[0].Text, nil
}
