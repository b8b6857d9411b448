package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartcalc/internal/observability"
	"smartcalc/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the assistant's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("assistant")

// Handler serves the AI assistant endpoints: explaining the session's last
// calculation and solving free-form math questions.
type Handler struct {
	sessions  *session.Store
	completer Completer
}

// NewHandler returns a Handler using the given session store and completion
// backend.
func NewHandler(sessions *session.Store, completer Completer) *Handler {
	return &Handler{sessions: sessions, completer: completer}
}

// Explain handles POST /assistant/explain. It asks the model to walk through
// the session's last successful calculation; the request may override the
// prompt, mirroring the editable question box of the original UI.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "assistant.explain",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		observability.RecordError(ctx, span, logger, errorCounter, "explain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	sess := session.FromRequest(h.sessions, r)
	last, ok := sess.LastCalculation()
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "explain", "no calculation to explain", fmt.Errorf("session %s has no last calculation", sess.ID), http.StatusConflict, w)
		return
	}

	prompt := req.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = ExplainPrompt(last)
	}

	span.SetAttributes(attribute.String("assistant.expression", last.Expression))

	h.complete(ctx, w, logger, span, "explain", prompt, requestID)
}

// Solve handles POST /assistant/solve: a natural-language math question
// passed through to the model.
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "assistant.solve",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "solve", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		observability.RecordError(ctx, span, logger, errorCounter, "solve", "question is required", fmt.Errorf("empty question"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("assistant.question.length", len(req.Question)))

	h.complete(ctx, w, logger, span, "solve", SolvePrompt(req.Question), requestID)
}

// complete is the shared tail of both assistant operations: call the
// completion backend, record instruments, and write the answer or the
// mapped failure.
func (h *Handler) complete(ctx context.Context, w http.ResponseWriter, logger *zap.Logger, span trace.Span, opName, prompt, requestID string) {
	start := time.Now()
	answer, err := h.completer.Complete(ctx, prompt)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusForCompletionError(err), w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	requestsCounter.Add(ctx, 1, attrs)
	requestsHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("completion.received", trace.WithAttributes(
		attribute.Int("answer.length", len(answer)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("assistant request completed",
		zap.String("operation", opName),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("answer_length", len(answer)),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(AnswerResponse{Answer: answer})
}

// statusForCompletionError maps the completion error taxonomy to HTTP codes.
func statusForCompletionError(err error) int {
	switch {
	case errors.Is(err, ErrAuthenticationMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
