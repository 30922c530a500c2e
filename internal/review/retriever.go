// Package review implements the diff retrieval and orchestration stages of
// the pipeline: fetch the change, synthesize a review, publish the comment,
// and classify whatever happened into a terminal outcome.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diffsentry/diffsentry/internal/core"
	"github.com/diffsentry/diffsentry/internal/gh"
)

// Retriever fetches and bounds the diff between two commits. The fetch runs
// under its own timeout and is never retried.
type Retriever struct {
	maxBytes int
	timeout  time.Duration
	logger   *slog.Logger
}

// NewRetriever creates a retriever with the given size bound and per-call
// timeout.
func NewRetriever(maxBytes int, timeout time.Duration, logger *slog.Logger) *Retriever {
	if maxBytes <= 0 {
		maxBytes = core.DefaultMaxDiffBytes
	}
	return &Retriever{maxBytes: maxBytes, timeout: timeout, logger: logger}
}

// Fetch compares base and head and concatenates the per-file patches in host
// order, newline-joined, skipping files without a textual patch. A payload
// that trims to nothing comes back with empty content; callers treat that as
// the empty-diff outcome, not an error. Content longer than the bound is cut
// to exactly maxBytes and the truncation marker is appended.
func (r *Retriever) Fetch(ctx context.Context, client gh.Client, pr *core.PullRequestContext) (*core.DiffPayload, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	files, err := client.CompareDiff(callCtx, pr.Owner, pr.Repo, pr.BaseSHA, pr.HeadSHA)
	if err != nil {
		return nil, fmt.Errorf("fetch diff: %w", err)
	}

	parts := make([]string, 0, len(files))
	for _, f := range files {
		if f.Patch == "" {
			continue
		}
		parts = append(parts, f.Patch)
	}

	content := strings.TrimSpace(strings.Join(parts, "\n"))
	if content == "" {
		return &core.DiffPayload{}, nil
	}

	truncated := false
	if len(content) > r.maxBytes {
		content = content[:r.maxBytes] + core.TruncationMarker
		truncated = true
		r.logger.Info("diff truncated at size limit",
			"repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number, "max_bytes", r.maxBytes)
	}

	return &core.DiffPayload{Content: content, Truncated: truncated}, nil
}
