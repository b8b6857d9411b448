package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"smartcalc/internal/calc"
	"smartcalc/internal/observability"
	"smartcalc/internal/session"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints. Session state (history ledger,
// last calculation) is resolved per request from the store — never held in
// package-level state.
type Handler struct {
	sessions *session.Store
}

// NewHandler returns a Handler backed by the given session store.
func NewHandler(sessions *session.Store) *Handler {
	return &Handler{sessions: sessions}
}

// Evaluate handles POST /calculator/{operation}. The operation slug in the
// URL selects the operator; the JSON body carries the operands. A successful
// calculation is appended to the session's history.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	slug := chi.URLParam(r, "operation")

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", slug),
		trace.WithAttributes(
			attribute.String("calculator.operation", slug),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	op, err := calc.ParseOperator(slug)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, slug, "unknown operation", err, http.StatusNotFound, w)
		return
	}

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, slug, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if math.IsNaN(req.A) || math.IsInf(req.A, 0) || math.IsNaN(req.B) || math.IsInf(req.B, 0) {
		observability.RecordError(ctx, span, logger, errorCounter, slug, "invalid numeric input", fmt.Errorf("a=%g b=%g", req.A, req.B), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := calc.Evaluate(req.A, req.B, op)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		// A failed evaluation never touches the session ledger.
		observability.RecordError(ctx, span, logger, errorCounter, slug, err.Error(), err, statusForEvaluateError(err), w)
		return
	}

	sess := session.FromRequest(h.sessions, r)
	sess.RecordCalculation(result)

	attrs := metric.WithAttributes(attribute.String("operation", slug))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.Result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result.Result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result.Result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", slug),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.String("expression", result.Expression),
		zap.Float64("result", result.Result),
		zap.String("session_id", sess.ID),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	resp := CalcResponse{
		Operation:  slug,
		A:          req.A,
		B:          req.B,
		Expression: result.Expression,
		Result:     result.Result,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// History handles GET /calculator/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.history")
	defer span.End()

	sess := session.FromRequest(h.sessions, r)
	snapshot := sess.History()

	entries := make([]HistoryEntry, 0, len(snapshot))
	for _, c := range snapshot {
		entries = append(entries, HistoryEntry{
			Expression: c.Expression,
			Result:     c.Result,
		})
	}

	span.SetAttributes(attribute.Int("calculator.history.length", len(entries)))
	span.SetStatus(codes.Ok, "")

	logger.Info("history read",
		zap.String("session_id", sess.ID),
		zap.Int("entries", len(entries)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HistoryResponse{History: entries})
}

// ClearHistory handles DELETE /calculator/history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	_, span := tracer.Start(ctx, "calculator.history.clear")
	defer span.End()

	sess := session.FromRequest(h.sessions, r)
	sess.ClearHistory()

	span.SetStatus(codes.Ok, "")

	logger.Info("history cleared",
		zap.String("session_id", sess.ID),
	)

	w.WriteHeader(http.StatusNoContent)
}

// statusForEvaluateError maps engine failures to HTTP status codes.
func statusForEvaluateError(err error) int {
	switch {
	case errors.Is(err, calc.ErrDivisionByZero):
		return http.StatusBadRequest
	case errors.Is(err, calc.ErrNonFiniteResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, calc.ErrUnknownOperator):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
