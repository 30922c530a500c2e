package jobs

import (
	"context"

	"github.com/diffsentry/diffsentry/internal/core"
	"github.com/diffsentry/diffsentry/internal/review"
)

// reviewJob adapts the review pipeline to the core.Job contract.
type reviewJob struct {
	pipeline *review.Pipeline
}

// NewReviewJob wraps a pipeline as a dispatchable job.
func NewReviewJob(pipeline *review.Pipeline) core.Job {
	if pipeline == nil {
		panic("pipeline cannot be nil")
	}
	return &reviewJob{pipeline: pipeline}
}

// Run executes the downstream pipeline stages for one accepted request.
func (j *reviewJob) Run(ctx context.Context, req *core.ReviewRequest) core.Outcome {
	return j.pipeline.Run(ctx, req.PR, req.ReceivedAt)
}
