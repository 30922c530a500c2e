package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/diffsentry/diffsentry/internal/core"
	"github.com/diffsentry/diffsentry/internal/gh"
	"github.com/diffsentry/diffsentry/internal/llm"
)

// Caller-visible messages for terminal outcomes. Upstream error detail never
// leaves the logs.
const (
	msgSuccess  = "Review posted."
	msgUpstream = "Upstream service error."
	msgConfig   = "Server configuration error."
)

// Pipeline runs the downstream stages for one normalized pull request:
// fetch diff, synthesize review, publish comment. Each external call carries
// its own timeout and is attempted exactly once. Instances are safe for
// concurrent use; per-invocation state lives entirely on the stack.
type Pipeline struct {
	clients        gh.ClientProvider
	retriever      *Retriever
	synth          *llm.Synthesizer
	publishTimeout time.Duration
	logger         *slog.Logger
}

// NewPipeline wires the downstream stages together.
func NewPipeline(clients gh.ClientProvider, retriever *Retriever, synth *llm.Synthesizer, publishTimeout time.Duration, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		clients:        clients,
		retriever:      retriever,
		synth:          synth,
		publishTimeout: publishTimeout,
		logger:         logger,
	}
}

// Run executes fetch → synthesize → publish for one pull request and returns
// the terminal outcome. start is the inbound request's arrival time, so the
// outcome's elapsed time covers the whole invocation. Every stage error is
// translated here; nothing escapes unclassified.
func (p *Pipeline) Run(ctx context.Context, pr *core.PullRequestContext, start time.Time) core.Outcome {
	client, err := p.clients.ClientFor(ctx, pr.InstallationID)
	if err != nil {
		p.logger.Error("failed to resolve GitHub client",
			"repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number, "error", err)
		return core.NewOutcome(core.OutcomeConfigError, core.StageFetchDiff, msgConfig, start)
	}

	diff, err := p.retriever.Fetch(ctx, client, pr)
	if err != nil {
		p.logger.Error("diff retrieval failed",
			"repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number, "error", err)
		return core.NewOutcome(core.OutcomeUpstreamError, core.StageFetchDiff, msgUpstream, start)
	}
	if diff.Len() == 0 {
		return core.NewOutcome(core.OutcomeEmptyDiff, core.StageFetchDiff, core.EmptyDiffMessage, start)
	}

	result, err := p.synth.Review(ctx, pr, diff)
	if err != nil {
		p.logger.Error("review synthesis failed",
			"repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number, "error", err)
		return core.NewOutcome(core.OutcomeUpstreamError, core.StageSynthesize, msgUpstream, start)
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	comment, err := client.CreateComment(publishCtx, pr.Owner, pr.Repo, pr.Number, result.Body)
	if err != nil {
		p.logger.Error("comment publish failed",
			"repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number, "error", err)
		return core.NewOutcome(core.OutcomeUpstreamError, core.StagePublish, msgUpstream, start)
	}

	p.logger.Info("review comment published",
		"repo", pr.Owner+"/"+pr.Repo,
		"pr", pr.Number,
		"comment_id", comment.ID,
		"comment_url", comment.URL,
		"provenance", string(result.Provenance),
		"diff_truncated", diff.Truncated,
	)
	return core.NewOutcome(core.OutcomeSuccess, core.StagePublish, msgSuccess, start)
}
