// Package gh wraps the official go-github client behind the narrow set of
// operations the review pipeline needs: comparing two commits and publishing
// a single comment.
package gh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// FilePatch holds the filename and textual patch of one changed file. Files
// without a textual patch (binary, rename-only) carry an empty Patch.
type FilePatch struct {
	Filename string
	Patch    string
}

// CommentRef identifies a created pull-request comment, for logging.
type CommentRef struct {
	ID  int64
	URL string
}

// PullRequestInfo is the subset of PR metadata the manual CLI needs to build
// a review context without a webhook payload.
type PullRequestInfo struct {
	Number  int
	Title   string
	Body    string
	BaseSHA string
	HeadSHA string
}

// Client defines the source-control host operations used by the pipeline.
type Client interface {
	// CompareDiff returns the per-file patches between two commits, in the
	// order the host returns them.
	CompareDiff(ctx context.Context, owner, repo, base, head string) ([]FilePatch, error)

	// CreateComment posts one comment on a pull request and returns a
	// reference to the created comment.
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (*CommentRef, error)

	// GetPullRequest retrieves PR metadata by number.
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequestInfo, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient wraps a configured go-github client.
func NewClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a client authenticated with a personal access token.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// CompareDiff lists the files changed between base and head. It paginates the
// comparison so large pull requests are not silently cut off at one page.
func (g *gitHubClient) CompareDiff(ctx context.Context, owner, repo, base, head string) ([]FilePatch, error) {
	var patches []FilePatch
	opts := &github.ListOptions{PerPage: 100}

	for {
		cmp, resp, err := g.client.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			g.logger.Error("failed to compare commits",
				"owner", owner, "repo", repo, "base", base, "head", head, "error", err)
			return nil, fmt.Errorf("compare %s...%s: %w", base, head, err)
		}

		for _, file := range cmp.Files {
			patches = append(patches, FilePatch{
				Filename: file.GetFilename(),
				Patch:    file.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return patches, nil
}

// CreateComment posts a single issue comment on the pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) (*CommentRef, error) {
	comment, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		g.logger.Error("failed to create comment",
			"owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, fmt.Errorf("create comment on #%d: %w", number, err)
	}

	return &CommentRef{ID: comment.GetID(), URL: comment.GetHTMLURL()}, nil
}

// GetPullRequest fetches the metadata needed to review a PR outside of a
// webhook delivery.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequestInfo, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request",
			"owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, fmt.Errorf("get pull request #%d: %w", number, err)
	}

	return &PullRequestInfo{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		BaseSHA: pr.GetBase().GetSHA(),
		HeadSHA: pr.GetHead().GetSHA(),
	}, nil
}
