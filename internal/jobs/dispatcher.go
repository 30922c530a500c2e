// Package jobs runs accepted review requests in the background, giving the
// acknowledge-then-process mode its explicit error boundary: every queued
// request ends in exactly one logged outcome.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/diffsentry/diffsentry/internal/core"
)

// dispatcher implements core.JobDispatcher with a bounded queue and a small
// worker pool. The queue is in-memory only: a request that cannot be accepted
// is rejected immediately, never persisted or retried.
type dispatcher struct {
	reviewJob  core.Job
	jobQueue   chan *core.ReviewRequest
	maxWorkers int
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool. If maxWorkers is
// 0 or negative, it defaults to 1.
func NewDispatcher(reviewJob core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		reviewJob:  reviewJob,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan *core.ReviewRequest, 100),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes requests from the queue until it is closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Info("starting review worker", "id", workerID)

	for req := range d.jobQueue {
		d.processRequest(workerID, req)
	}

	d.logger.Info("shutting down review worker", "id", workerID)
}

// processRequest runs one review to completion and logs its outcome. The job
// gets a fresh background context: the webhook sender has already been
// answered, and a disconnect on its side must not abandon an in-flight
// comment post.
func (d *dispatcher) processRequest(workerID int, req *core.ReviewRequest) {
	d.logger.Info("worker processing review",
		"worker_id", workerID,
		"repo", req.PR.Owner+"/"+req.PR.Repo,
		"pr", req.PR.Number,
	)

	outcome := d.reviewJob.Run(context.Background(), req)
	outcome.Log(d.logger, req.PR)
}

// Dispatch queues a review request for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, req *core.ReviewRequest) error {
	d.logger.Info("queuing review",
		"repo", req.PR.Owner+"/"+req.PR.Repo, "pr", req.PR.Number, "action", req.PR.Action)

	select {
	case d.jobQueue <- req:
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept new review")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for in-flight reviews
// to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for reviews to finish")
	close(d.jobQueue)
	d.wg.Wait()
	d.logger.Info("all reviews have finished")
}
