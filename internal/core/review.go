package core

const (
	// DefaultMaxDiffBytes bounds the diff text sent to the model.
	DefaultMaxDiffBytes = 100_000

	// TruncationMarker is appended verbatim when a diff is cut at the limit.
	TruncationMarker = "\n... [diff truncated]"

	// FallbackReviewBody is published when the model returns a well-formed
	// but empty review.
	FallbackReviewBody = "No issues found in this change."

	// EmptyDiffMessage answers webhooks whose diff resolved to nothing.
	EmptyDiffMessage = "No changes to review."
)

// DiffPayload is the bounded diff text handed to the synthesizer. Content is
// the literal text sent to the model, including the truncation marker when
// Truncated is set.
type DiffPayload struct {
	Content   string
	Truncated bool
}

// Len reports the byte length of the payload content.
func (d *DiffPayload) Len() int {
	return len(d.Content)
}

// Provenance records where a review body came from.
type Provenance string

const (
	ProvenanceModel    Provenance = "model-generated"
	ProvenanceFallback Provenance = "fallback-default"
)

// ReviewResult is the markdown review to be published.
type ReviewResult struct {
	Body       string
	Provenance Provenance
}
