package core

import (
	"context"
	"time"
)

// ReviewRequest is one accepted webhook delivery queued for background
// processing. ReceivedAt anchors the outcome's elapsed time to the moment
// the inbound request arrived.
type ReviewRequest struct {
	PR         *PullRequestContext
	ReceivedAt time.Time
}

// JobDispatcher accepts review requests for background processing. It
// decouples the webhook handler from the pipeline execution mechanism so the
// handler can acknowledge the sender immediately.
type JobDispatcher interface {
	// Dispatch queues a pull request for review. It returns an error when
	// the job cannot be accepted, e.g. the queue is full, providing a
	// backpressure signal to the handler.
	Dispatch(ctx context.Context, req *ReviewRequest) error

	// Stop drains the queue and waits for in-flight reviews to finish.
	Stop()
}

// Job is a single executable unit of work: one review for one pull request.
type Job interface {
	// Run executes the remaining pipeline stages for the given request and
	// returns the terminal outcome. Callers pass a background-derived
	// context so the inbound request's lifecycle cannot cancel it.
	Run(ctx context.Context, req *ReviewRequest) Outcome
}
