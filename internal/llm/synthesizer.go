package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diffsentry/diffsentry/internal/core"
)

// Synthesizer turns a diff payload into a review by rendering the prompt and
// invoking the generator once, under its own timeout.
type Synthesizer struct {
	gen     Generator
	prompts *PromptRenderer
	timeout time.Duration
	logger  *slog.Logger
}

// NewSynthesizer creates a synthesizer with the given generator and per-call
// timeout.
func NewSynthesizer(gen Generator, prompts *PromptRenderer, timeout time.Duration, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{gen: gen, prompts: prompts, timeout: timeout, logger: logger}
}

// Review produces the review text for one pull request. A whitespace-only
// model reply is replaced by the fixed fallback body rather than publishing
// an empty comment. Errors from the model call are returned as-is for the
// pipeline to classify; there is no retry.
func (s *Synthesizer) Review(ctx context.Context, pr *core.PullRequestContext, diff *core.DiffPayload) (*core.ReviewResult, error) {
	prompt, err := s.prompts.Render(pr, diff)
	if err != nil {
		return nil, fmt.Errorf("build review prompt: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		s.logger.Info("model returned an empty review, substituting the fallback body",
			"repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number)
		return &core.ReviewResult{
			Body:       core.FallbackReviewBody,
			Provenance: core.ProvenanceFallback,
		}, nil
	}

	return &core.ReviewResult{
		Body:       text,
		Provenance: core.ProvenanceModel,
	}, nil
}
