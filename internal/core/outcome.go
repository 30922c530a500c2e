// Package core defines the essential data structures that form the backbone
// of the review pipeline: the normalized pull-request context, the diff and
// review payloads, and the tagged outcome every invocation terminates with.
package core

import (
	"log/slog"
	"net/http"
	"time"
)

// Stage identifies how far the pipeline got before it terminated.
type Stage string

const (
	StageVerify     Stage = "verify"
	StageClassify   Stage = "classify"
	StageNormalize  Stage = "normalize"
	StageFetchDiff  Stage = "fetch_diff"
	StageSynthesize Stage = "synthesize"
	StagePublish    Stage = "publish"
)

// OutcomeKind classifies the terminal result of one webhook invocation.
type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "success"
	OutcomeIgnored         OutcomeKind = "ignored"
	OutcomeEmptyDiff       OutcomeKind = "empty_diff"
	OutcomeAuthError       OutcomeKind = "authentication_error"
	OutcomeValidationError OutcomeKind = "validation_error"
	OutcomeConfigError     OutcomeKind = "configuration_error"
	OutcomeUpstreamError   OutcomeKind = "upstream_error"
	OutcomeInternalError   OutcomeKind = "internal_error"
)

// HTTPStatus maps an outcome kind to the status returned to the webhook
// sender. The mapping is total: every kind has exactly one status, and an
// unknown kind is treated as an internal error rather than silently passing.
func (k OutcomeKind) HTTPStatus() int {
	switch k {
	case OutcomeSuccess:
		return http.StatusOK
	case OutcomeIgnored:
		return http.StatusOK
	case OutcomeEmptyDiff:
		return http.StatusOK
	case OutcomeAuthError:
		return http.StatusUnauthorized
	case OutcomeValidationError:
		return http.StatusBadRequest
	case OutcomeConfigError:
		return http.StatusInternalServerError
	case OutcomeUpstreamError:
		return http.StatusBadGateway
	case OutcomeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Outcome is the terminal, caller-visible result of one pipeline invocation.
// Message is always one of the generic messages; upstream error detail stays
// in the logs.
type Outcome struct {
	Kind    OutcomeKind
	Stage   Stage
	Message string
	Elapsed time.Duration
}

// NewOutcome builds an outcome, stamping the elapsed time since start.
func NewOutcome(kind OutcomeKind, stage Stage, message string, start time.Time) Outcome {
	return Outcome{
		Kind:    kind,
		Stage:   stage,
		Message: message,
		Elapsed: time.Since(start),
	}
}

// Log writes the structured record for this outcome. Repository and PR
// identifiers are attached when the pipeline got far enough to know them.
func (o Outcome) Log(logger *slog.Logger, pr *PullRequestContext) {
	attrs := []any{
		"outcome", string(o.Kind),
		"stage", string(o.Stage),
		"elapsed_ms", o.Elapsed.Milliseconds(),
		"message", o.Message,
	}
	if pr != nil {
		attrs = append(attrs, "repo", pr.Owner+"/"+pr.Repo, "pr", pr.Number)
	}

	switch o.Kind {
	case OutcomeUpstreamError, OutcomeConfigError, OutcomeInternalError:
		logger.Error("review pipeline finished", attrs...)
	case OutcomeAuthError, OutcomeValidationError:
		logger.Warn("review pipeline finished", attrs...)
	default:
		logger.Info("review pipeline finished", attrs...)
	}
}
