package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffsentry/diffsentry/internal/core"
	"github.com/diffsentry/diffsentry/internal/gh"
)

type fakeClient struct {
	files      []gh.FilePatch
	compareErr error

	comment    *gh.CommentRef
	publishErr error

	compareCalls int
	publishCalls int
	published    string
}

func (f *fakeClient) CompareDiff(_ context.Context, _, _, _, _ string) ([]gh.FilePatch, error) {
	f.compareCalls++
	return f.files, f.compareErr
}

func (f *fakeClient) CreateComment(_ context.Context, _, _ string, _ int, body string) (*gh.CommentRef, error) {
	f.publishCalls++
	f.published = body
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	if f.comment != nil {
		return f.comment, nil
	}
	return &gh.CommentRef{ID: 1, URL: "https://github.com/acme/widget/pull/42#issuecomment-1"}, nil
}

func (f *fakeClient) GetPullRequest(_ context.Context, _, _ string, number int) (*gh.PullRequestInfo, error) {
	return &gh.PullRequestInfo{Number: number}, nil
}

func testPR() *core.PullRequestContext {
	return &core.PullRequestContext{
		Owner:   "acme",
		Repo:    "widget",
		Number:  42,
		BaseSHA: "aaa111",
		HeadSHA: "bbb222",
		Title:   "Add widget polishing",
		Action:  "opened",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRetriever_Fetch(t *testing.T) {
	t.Run("concatenates patches in host order", func(t *testing.T) {
		client := &fakeClient{files: []gh.FilePatch{
			{Filename: "a.go", Patch: "@@ a"},
			{Filename: "b.go", Patch: "@@ b"},
			{Filename: "c.go", Patch: "@@ c"},
		}}
		r := NewRetriever(1000, time.Second, testLogger())

		diff, err := r.Fetch(context.Background(), client, testPR())
		require.NoError(t, err)
		assert.Equal(t, "@@ a\n@@ b\n@@ c", diff.Content)
		assert.False(t, diff.Truncated)
	})

	t.Run("skips files without a textual patch", func(t *testing.T) {
		client := &fakeClient{files: []gh.FilePatch{
			{Filename: "a.go", Patch: "@@ a"},
			{Filename: "logo.png", Patch: ""},
			{Filename: "b.go", Patch: "@@ b"},
		}}
		r := NewRetriever(1000, time.Second, testLogger())

		diff, err := r.Fetch(context.Background(), client, testPR())
		require.NoError(t, err)
		assert.Equal(t, "@@ a\n@@ b", diff.Content)
	})

	t.Run("empty diff yields empty payload, not an error", func(t *testing.T) {
		client := &fakeClient{files: []gh.FilePatch{
			{Filename: "logo.png", Patch: ""},
		}}
		r := NewRetriever(1000, time.Second, testLogger())

		diff, err := r.Fetch(context.Background(), client, testPR())
		require.NoError(t, err)
		assert.Zero(t, diff.Len())
		assert.False(t, diff.Truncated)
	})

	t.Run("whitespace-only diff trims to empty", func(t *testing.T) {
		client := &fakeClient{files: []gh.FilePatch{
			{Filename: "a.go", Patch: "  \n\t  "},
		}}
		r := NewRetriever(1000, time.Second, testLogger())

		diff, err := r.Fetch(context.Background(), client, testPR())
		require.NoError(t, err)
		assert.Zero(t, diff.Len())
	})

	t.Run("truncates to exactly the limit plus the marker", func(t *testing.T) {
		const limit = 100_000
		big := strings.Repeat("x", 150_000)
		client := &fakeClient{files: []gh.FilePatch{{Filename: "big.go", Patch: big}}}
		r := NewRetriever(limit, time.Second, testLogger())

		diff, err := r.Fetch(context.Background(), client, testPR())
		require.NoError(t, err)
		assert.True(t, diff.Truncated)
		assert.Equal(t, limit+len(core.TruncationMarker), diff.Len())
		assert.Equal(t, big[:limit], diff.Content[:limit])
		assert.True(t, strings.HasSuffix(diff.Content, core.TruncationMarker))
	})

	t.Run("content at the limit is not truncated", func(t *testing.T) {
		exact := strings.Repeat("y", 500)
		client := &fakeClient{files: []gh.FilePatch{{Filename: "a.go", Patch: exact}}}
		r := NewRetriever(500, time.Second, testLogger())

		diff, err := r.Fetch(context.Background(), client, testPR())
		require.NoError(t, err)
		assert.False(t, diff.Truncated)
		assert.Equal(t, exact, diff.Content)
	})

	t.Run("transport failure is wrapped, called once", func(t *testing.T) {
		client := &fakeClient{compareErr: errors.New("boom")}
		r := NewRetriever(1000, time.Second, testLogger())

		_, err := r.Fetch(context.Background(), client, testPR())
		require.Error(t, err)
		assert.Equal(t, 1, client.compareCalls)
	})
}
