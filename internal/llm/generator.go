// Package llm renders the review prompt and invokes a generative model to
// produce the review text.
package llm

import (
	"context"
	"errors"
)

// ErrInvalidModelResponse reports a model reply whose shape could not be
// validated (missing candidates, content, or text parts). The pipeline
// classifies it as an upstream failure.
var ErrInvalidModelResponse = errors.New("invalid model response")

// Generator issues a single completion call to a generative model. A failed
// call is terminal for the invocation; implementations never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
