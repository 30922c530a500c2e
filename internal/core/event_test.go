package core

import (
	"errors"
	"testing"

	"github.com/google/go-github/v73/github"
)

func TestShouldReview(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		action    string
		proceed   bool
	}{
		{name: "opened pull request", eventType: "pull_request", action: "opened", proceed: true},
		{name: "synchronize pull request", eventType: "pull_request", action: "synchronize", proceed: true},
		{name: "closed pull request", eventType: "pull_request", action: "closed"},
		{name: "labeled pull request", eventType: "pull_request", action: "labeled"},
		{name: "reopened pull request", eventType: "pull_request", action: "reopened"},
		{name: "empty action", eventType: "pull_request", action: ""},
		{name: "push event", eventType: "push", action: "opened"},
		{name: "issue comment event", eventType: "issue_comment", action: "created"},
		{name: "empty event type", eventType: "", action: "opened"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ShouldReview(tt.eventType, tt.action)
			if d.Proceed != tt.proceed {
				t.Errorf("ShouldReview(%q, %q).Proceed = %v, want %v", tt.eventType, tt.action, d.Proceed, tt.proceed)
			}
			if !d.Proceed && d.Reason == "" {
				t.Error("ignore decision must carry a reason")
			}
		})
	}
}

func validEvent() *github.PullRequestEvent {
	return &github.PullRequestEvent{
		Action: github.Ptr("opened"),
		Repo: &github.Repository{
			Name:  github.Ptr("widget"),
			Owner: &github.User{Login: github.Ptr("acme")},
		},
		PullRequest: &github.PullRequest{
			Number: github.Ptr(42),
			Title:  github.Ptr("Add widget polishing"),
			Body:   github.Ptr("Polishes all widgets."),
			Base:   &github.PullRequestBranch{SHA: github.Ptr("aaa111")},
			Head:   &github.PullRequestBranch{SHA: github.Ptr("bbb222")},
		},
	}
}

func TestContextFromEvent(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		ctx, err := ContextFromEvent(validEvent())
		if err != nil {
			t.Fatalf("ContextFromEvent() error = %v", err)
		}
		if ctx.Owner != "acme" || ctx.Repo != "widget" || ctx.Number != 42 {
			t.Errorf("unexpected context: %+v", ctx)
		}
		if ctx.BaseSHA != "aaa111" || ctx.HeadSHA != "bbb222" {
			t.Errorf("unexpected SHAs: %+v", ctx)
		}
		if ctx.Action != "opened" || ctx.Title != "Add widget polishing" {
			t.Errorf("unexpected metadata: %+v", ctx)
		}
	})

	t.Run("missing description is allowed", func(t *testing.T) {
		ev := validEvent()
		ev.PullRequest.Body = nil
		ctx, err := ContextFromEvent(ev)
		if err != nil {
			t.Fatalf("ContextFromEvent() error = %v", err)
		}
		if ctx.Body != "" {
			t.Errorf("expected empty body, got %q", ctx.Body)
		}
	})

	tests := []struct {
		name      string
		mutate    func(*github.PullRequestEvent)
		wantField string
	}{
		{
			name:      "nil event",
			mutate:    nil,
			wantField: "payload",
		},
		{
			name:      "missing owner login",
			mutate:    func(e *github.PullRequestEvent) { e.Repo.Owner = nil },
			wantField: "repository.owner.login",
		},
		{
			name:      "missing repository",
			mutate:    func(e *github.PullRequestEvent) { e.Repo = nil },
			wantField: "repository.owner.login",
		},
		{
			name:      "missing repository name",
			mutate:    func(e *github.PullRequestEvent) { e.Repo.Name = nil },
			wantField: "repository.name",
		},
		{
			name:      "missing pull request",
			mutate:    func(e *github.PullRequestEvent) { e.PullRequest = nil },
			wantField: "number",
		},
		{
			name:      "zero number",
			mutate:    func(e *github.PullRequestEvent) { e.PullRequest.Number = github.Ptr(0) },
			wantField: "number",
		},
		{
			name:      "missing base sha",
			mutate:    func(e *github.PullRequestEvent) { e.PullRequest.Base = nil },
			wantField: "base.sha",
		},
		{
			name:      "empty base sha",
			mutate:    func(e *github.PullRequestEvent) { e.PullRequest.Base.SHA = github.Ptr("") },
			wantField: "base.sha",
		},
		{
			name:      "missing head sha",
			mutate:    func(e *github.PullRequestEvent) { e.PullRequest.Head = nil },
			wantField: "head.sha",
		},
		{
			name:      "missing title",
			mutate:    func(e *github.PullRequestEvent) { e.PullRequest.Title = nil },
			wantField: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev *github.PullRequestEvent
			if tt.mutate != nil {
				ev = validEvent()
				tt.mutate(ev)
			}

			ctx, err := ContextFromEvent(ev)
			if ctx != nil {
				t.Error("no partial context may be returned on failure")
			}

			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fieldErr.Field != tt.wantField {
				t.Errorf("FieldError.Field = %q, want %q", fieldErr.Field, tt.wantField)
			}
		})
	}
}
