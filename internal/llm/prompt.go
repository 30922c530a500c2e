package llm

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/diffsentry/diffsentry/internal/core"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// promptData is the template input for the review prompt.
type promptData struct {
	Title       string
	Description string
	Diff        string
	Truncated   bool
}

// PromptRenderer renders the embedded review prompt template.
type PromptRenderer struct {
	tmpl *template.Template
}

// NewPromptRenderer parses the embedded prompt template once at startup.
func NewPromptRenderer() (*PromptRenderer, error) {
	content, err := promptFiles.ReadFile("prompts/code_review.prompt")
	if err != nil {
		return nil, fmt.Errorf("read embedded prompt file: %w", err)
	}

	tmpl, err := template.New("code_review").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	return &PromptRenderer{tmpl: tmpl}, nil
}

// Render produces the prompt for one review, embedding the diff payload
// verbatim inside the template's fenced block.
func (p *PromptRenderer) Render(pr *core.PullRequestContext, diff *core.DiffPayload) (string, error) {
	var buf bytes.Buffer
	err := p.tmpl.Execute(&buf, promptData{
		Title:       pr.Title,
		Description: pr.Body,
		Diff:        diff.Content,
		Truncated:   diff.Truncated,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt template: %w", err)
	}
	return buf.String(), nil
}
