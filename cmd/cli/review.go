package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diffsentry/diffsentry/internal/config"
	"github.com/diffsentry/diffsentry/internal/core"
	"github.com/diffsentry/diffsentry/internal/gh"
	"github.com/diffsentry/diffsentry/internal/llm"
	"github.com/diffsentry/diffsentry/internal/logger"
	"github.com/diffsentry/diffsentry/internal/review"
)

var (
	providerName string
	modelName    string
	ollamaHost   string
	maxDiffBytes int
)

var reviewCmd = &cobra.Command{
	Use:   "review [pr-url]",
	Short: "Run a review for a GitHub pull request",
	Long: `Run the review pipeline for a single pull request without a webhook
delivery: fetch the diff, generate the review, and post it as a comment.

Examples:
  diffsentry review https://github.com/owner/repo/pull/123
  diffsentry review --provider ollama --model qwen2.5-coder https://github.com/owner/repo/pull/123`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVar(&providerName, "provider", config.ProviderGemini, "Generator provider (gemini or ollama)")
	reviewCmd.Flags().StringVar(&modelName, "model", "gemini-2.5-flash", "Generator model name")
	reviewCmd.Flags().StringVar(&ollamaHost, "ollama-host", "http://localhost:11434", "Ollama server URL")
	reviewCmd.Flags().IntVar(&maxDiffBytes, "max-diff-bytes", core.DefaultMaxDiffBytes, "Diff size limit in bytes")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	owner, repo, number, err := parsePullRequestURL(args[0])
	if err != nil {
		return err
	}

	token := viper.GetString("GITHUB_TOKEN")
	if token == "" {
		return fmt.Errorf("a GitHub token is required (--github-token or GITHUB_TOKEN)")
	}

	log := logger.NewLogger(logger.Config{Level: "info", Format: "text"}, os.Stderr)

	clients := gh.NewTokenProvider(ctx, token, log)
	client, err := clients.ClientFor(ctx, 0)
	if err != nil {
		return err
	}

	generator, err := buildGenerator(ctx, log)
	if err != nil {
		return err
	}

	prompts, err := llm.NewPromptRenderer()
	if err != nil {
		return err
	}

	info, err := client.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("look up pull request: %w", err)
	}

	prCtx := &core.PullRequestContext{
		Owner:   owner,
		Repo:    repo,
		Number:  info.Number,
		BaseSHA: info.BaseSHA,
		HeadSHA: info.HeadSHA,
		Title:   info.Title,
		Body:    info.Body,
		Action:  "manual",
	}

	synth := llm.NewSynthesizer(generator, prompts, 45*time.Second, log)
	retriever := review.NewRetriever(maxDiffBytes, 10*time.Second, log)
	pipeline := review.NewPipeline(clients, retriever, synth, 10*time.Second, log)

	outcome := pipeline.Run(ctx, prCtx, start)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %dms)\n",
		outcome.Message, outcome.Kind, outcome.Elapsed.Milliseconds())

	if outcome.Kind != core.OutcomeSuccess && outcome.Kind != core.OutcomeEmptyDiff {
		return fmt.Errorf("review did not complete: %s", outcome.Kind)
	}
	return nil
}

func buildGenerator(ctx context.Context, log *slog.Logger) (llm.Generator, error) {
	switch providerName {
	case config.ProviderGemini:
		apiKey := viper.GetString("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
		}
		return llm.NewGeminiGenerator(ctx, apiKey, modelName, log)
	case config.ProviderOllama:
		return llm.NewOllamaGenerator(ollamaHost, modelName, log)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

// parsePullRequestURL extracts owner, repo, and PR number from a GitHub pull
// request URL such as https://github.com/owner/repo/pull/123.
func parsePullRequestURL(raw string) (owner, repo string, number int, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid pull request URL %q: %w", raw, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[2] != "pull" {
		return "", "", 0, fmt.Errorf("invalid pull request URL %q: expected .../owner/repo/pull/number", raw)
	}

	number, err = strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid pull request number in URL %q", raw)
	}

	return parts[0], parts[1], number, nil
}
