package core

import (
	"fmt"

	"github.com/google/go-github/v73/github"
)

// PullRequestEventType is the webhook event kind the pipeline reviews.
const PullRequestEventType = "pull_request"

// reviewedActions are the pull_request actions that trigger a review. Every
// other action (closed, labeled, reopened, ...) is ignored, not rejected.
var reviewedActions = map[string]struct{}{
	"opened":      {},
	"synchronize": {},
}

// Decision is the classifier's verdict for one (event-type, action) pair.
type Decision struct {
	Proceed bool
	Reason  string
}

// ShouldReview decides whether an incoming event is relevant. It is a pure,
// total function: any pair that is not a pull_request opened/synchronize
// yields an ignore decision with a reason, never an error.
func ShouldReview(eventType, action string) Decision {
	if eventType != PullRequestEventType {
		return Decision{Reason: fmt.Sprintf("event type %q is not reviewed", eventType)}
	}
	if _, ok := reviewedActions[action]; !ok {
		return Decision{Reason: fmt.Sprintf("action %q is not reviewed", action)}
	}
	return Decision{Proceed: true}
}

// PullRequestContext is the normalized, immutable working context derived
// once from a webhook payload. Body is optional; everything else is required.
type PullRequestContext struct {
	Owner   string
	Repo    string
	Number  int
	BaseSHA string
	HeadSHA string
	Title   string
	Body    string
	Action  string

	// InstallationID is set when the event came from a GitHub App
	// installation; zero in token-auth mode.
	InstallationID int64
}

// FieldError reports the first required payload field that was missing or
// malformed. No partial context is produced alongside it.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ContextFromEvent validates a parsed pull_request event and extracts the
// normalized context. It acts as an anti-corruption layer: go-github's
// getters make every access nil-safe, so unexpected payload shapes surface
// as a FieldError naming the first missing field, never as a panic.
func ContextFromEvent(event *github.PullRequestEvent) (*PullRequestContext, error) {
	if event == nil {
		return nil, &FieldError{Field: "payload"}
	}

	repo := event.GetRepo()
	if repo.GetOwner().GetLogin() == "" {
		return nil, &FieldError{Field: "repository.owner.login"}
	}
	if repo.GetName() == "" {
		return nil, &FieldError{Field: "repository.name"}
	}

	pr := event.GetPullRequest()
	if pr.GetNumber() <= 0 {
		return nil, &FieldError{Field: "number"}
	}
	if pr.GetBase().GetSHA() == "" {
		return nil, &FieldError{Field: "base.sha"}
	}
	if pr.GetHead().GetSHA() == "" {
		return nil, &FieldError{Field: "head.sha"}
	}
	if pr.GetTitle() == "" {
		return nil, &FieldError{Field: "title"}
	}

	return &PullRequestContext{
		Owner:          repo.GetOwner().GetLogin(),
		Repo:           repo.GetName(),
		Number:         pr.GetNumber(),
		BaseSHA:        pr.GetBase().GetSHA(),
		HeadSHA:        pr.GetHead().GetSHA(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		Action:         event.GetAction(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}
