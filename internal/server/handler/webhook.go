// Package handler provides the HTTP handlers for the diffsentry service.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/diffsentry/diffsentry/internal/config"
	"github.com/diffsentry/diffsentry/internal/core"
)

const (
	signatureHeader = "X-Hub-Signature-256"
	maxBodyBytes    = 5 << 20
)

// Generic caller-visible messages. Authentication failures deliberately do
// not say whether the header was missing or mismatched.
const (
	msgInvalidSignature = "Invalid signature."
	msgMalformedPayload = "Could not parse webhook payload."
	msgConfigError      = "Server configuration error."
	msgAccepted         = "Review accepted for processing."
	msgDispatchFailed   = "Failed to accept review."
)

// WebhookHandler processes incoming pull-request webhooks. It runs the fast
// synchronous stages (verify, classify, normalize) inline and answers their
// outcomes directly; an accepted event is queued and acknowledged with 202
// before the diff fetch, synthesis, and publish stages run. After the
// acknowledgment the only observable signals are the logs and the posted (or
// absent) comment.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{cfg: cfg, dispatcher: dispatcher, logger: logger}
}

// response is the JSON body returned to the webhook sender.
type response struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Handle processes one webhook delivery.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.finish(w, nil, core.NewOutcome(core.OutcomeValidationError, core.StageVerify, msgMalformedPayload, start))
		return
	}

	if out := h.verifySignature(body, r.Header.Get(signatureHeader), start); out != nil {
		h.finish(w, nil, *out)
		return
	}

	eventType := github.WebHookType(r)
	if eventType != core.PullRequestEventType {
		decision := core.ShouldReview(eventType, "")
		h.finish(w, nil, core.NewOutcome(core.OutcomeIgnored, core.StageClassify, decision.Reason, start))
		return
	}

	event, err := github.ParseWebHook(eventType, body)
	if err != nil {
		h.logger.Warn("could not parse webhook payload", "error", err)
		h.finish(w, nil, core.NewOutcome(core.OutcomeValidationError, core.StageNormalize, msgMalformedPayload, start))
		return
	}
	prEvent, ok := event.(*github.PullRequestEvent)
	if !ok {
		h.finish(w, nil, core.NewOutcome(core.OutcomeValidationError, core.StageNormalize, msgMalformedPayload, start))
		return
	}

	if decision := core.ShouldReview(eventType, prEvent.GetAction()); !decision.Proceed {
		h.finish(w, nil, core.NewOutcome(core.OutcomeIgnored, core.StageClassify, decision.Reason, start))
		return
	}

	prCtx, err := core.ContextFromEvent(prEvent)
	if err != nil {
		h.finish(w, nil, core.NewOutcome(core.OutcomeValidationError, core.StageNormalize, err.Error(), start))
		return
	}

	req := &core.ReviewRequest{PR: prCtx, ReceivedAt: start}
	if err := h.dispatcher.Dispatch(r.Context(), req); err != nil {
		h.logger.Error("failed to dispatch review",
			"repo", prCtx.Owner+"/"+prCtx.Repo, "pr", prCtx.Number, "error", err)
		h.finish(w, prCtx, core.NewOutcome(core.OutcomeInternalError, core.StageNormalize, msgDispatchFailed, start))
		return
	}

	h.logger.Info("review accepted",
		"repo", prCtx.Owner+"/"+prCtx.Repo, "pr", prCtx.Number, "action", prCtx.Action)
	writeJSON(w, http.StatusAccepted, response{
		Message:   msgAccepted,
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// verifySignature checks the HMAC-SHA256 digest of the exact raw body against
// the signature header. It returns nil when the request is authenticated.
// Missing-header and mismatch rejections are indistinguishable to the caller
// and produce the same log shape; neither the secret nor any digest value is
// ever logged. An empty secret fails closed in production and is only
// tolerated, with a warning, outside it.
func (h *WebhookHandler) verifySignature(body []byte, signature string, start time.Time) *core.Outcome {
	secret := h.cfg.GitHubWebhookSecret
	if secret == "" {
		if h.cfg.Production() {
			out := core.NewOutcome(core.OutcomeConfigError, core.StageVerify, msgConfigError, start)
			return &out
		}
		h.logger.Warn("webhook signature verification skipped: no secret configured",
			"environment", h.cfg.Environment)
		return nil
	}

	if err := github.ValidateSignature(signature, body, []byte(secret)); err != nil {
		h.logger.Warn("webhook signature rejected")
		out := core.NewOutcome(core.OutcomeAuthError, core.StageVerify, msgInvalidSignature, start)
		return &out
	}
	return nil
}

// finish logs a terminal outcome and writes its response.
func (h *WebhookHandler) finish(w http.ResponseWriter, pr *core.PullRequestContext, out core.Outcome) {
	out.Log(h.logger, pr)

	resp := response{ElapsedMs: out.Elapsed.Milliseconds()}
	if out.Kind.HTTPStatus() >= http.StatusBadRequest {
		resp.Error = out.Message
	} else {
		resp.Message = out.Message
	}
	writeJSON(w, out.Kind.HTTPStatus(), resp)
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
