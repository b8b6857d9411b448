package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartcalc/internal/calc"
	"smartcalc/internal/observability"
	"smartcalc/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type recordingCompleter struct {
	lastPrompt string
	answer     string
	err        error
}

func (c *recordingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.lastPrompt = prompt
	return c.answer, c.err
}

func newTestHandler(t *testing.T, completer Completer) (http.Handler, *session.Store) {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing metrics: %v", err)
	}

	store := session.NewStore()
	r := chi.NewRouter()
	r.Use(session.Middleware)
	NewHandler(store, completer).RegisterRoutes(r)
	return r, store
}

func recordCalculation(t *testing.T, store *session.Store, sessionID string, a, b float64, op calc.Operator) calc.Calculation {
	t.Helper()
	c, err := calc.Evaluate(a, b, op)
	if err != nil {
		t.Fatalf("evaluating: %v", err)
	}
	store.Get(sessionID).RecordCalculation(c)
	return c
}

func post(t *testing.T, h http.Handler, sessionID, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set(session.Header, sessionID)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestExplainUsesDefaultPromptFromLastCalculation(t *testing.T) {
	completer := &recordingCompleter{answer: "step by step"}
	h, store := newTestHandler(t, completer)

	recordCalculation(t, store, "s1", 3, 4, calc.Add)

	w := post(t, h, "s1", "/assistant/explain", `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AnswerResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("decoding answer: %v", err)
	}
	if resp.Answer != "step by step" {
		t.Fatalf("expected stubbed answer, got %q", resp.Answer)
	}

	if !strings.Contains(completer.lastPrompt, "3 + 4") || !strings.Contains(completer.lastPrompt, "7") {
		t.Fatalf("expected default prompt to mention expression and result, got %q", completer.lastPrompt)
	}
}

func TestExplainAcceptsPromptOverride(t *testing.T) {
	completer := &recordingCompleter{answer: "ok"}
	h, store := newTestHandler(t, completer)

	recordCalculation(t, store, "s1", 2, 10, calc.Power)

	w := post(t, h, "s1", "/assistant/explain", `{"prompt":"why is 2^10 big?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if completer.lastPrompt != "why is 2^10 big?" {
		t.Fatalf("expected override prompt, got %q", completer.lastPrompt)
	}
}

func TestExplainWithoutLastCalculationConflicts(t *testing.T) {
	h, _ := newTestHandler(t, &recordingCompleter{})

	w := post(t, h, "fresh", "/assistant/explain", `{}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestExplainAllowsEmptyBody(t *testing.T) {
	completer := &recordingCompleter{answer: "ok"}
	h, store := newTestHandler(t, completer)

	recordCalculation(t, store, "s1", 1, 1, calc.Add)

	w := post(t, h, "s1", "/assistant/explain", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with empty body, got %d", w.Code)
	}
}

func TestSolveBuildsTutorPrompt(t *testing.T) {
	completer := &recordingCompleter{answer: "8"}
	h, _ := newTestHandler(t, completer)

	w := post(t, h, "s1", "/assistant/solve", `{"question":"What is 12 divided by 3 plus 4?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(completer.lastPrompt, "What is 12 divided by 3 plus 4?") {
		t.Fatalf("expected question in prompt, got %q", completer.lastPrompt)
	}
	if !strings.Contains(completer.lastPrompt, "math tutor") {
		t.Fatalf("expected tutor framing in prompt, got %q", completer.lastPrompt)
	}
}

func TestSolveRejectsBlankQuestion(t *testing.T) {
	h, _ := newTestHandler(t, &recordingCompleter{})

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		w := post(t, h, "s1", "/assistant/solve", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestCompletionFailuresMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "auth missing", err: ErrAuthenticationMissing, status: http.StatusServiceUnavailable},
		{name: "unavailable", err: ErrServiceUnavailable, status: http.StatusServiceUnavailable},
		{name: "request failed", err: ErrRequestFailed, status: http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestHandler(t, &recordingCompleter{err: tc.err})

			w := post(t, h, "s1", "/assistant/solve", `{"question":"1+1?"}`)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}
