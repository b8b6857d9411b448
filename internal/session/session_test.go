package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"smartcalc/internal/calc"
	"smartcalc/internal/history"
)

func TestStoreGetCreatesAndReuses(t *testing.T) {
	st := NewStore()

	s1 := st.Get("abc")
	s2 := st.Get("abc")
	if s1 != s2 {
		t.Fatal("expected the same session for the same id")
	}

	s3 := st.Get("other")
	if s3 == s1 {
		t.Fatal("expected distinct sessions for distinct ids")
	}
}

func TestSessionRecordAndLastCalculation(t *testing.T) {
	st := NewStore()
	s := st.Get("abc")

	if _, ok := s.LastCalculation(); ok {
		t.Fatal("expected no last calculation on a fresh session")
	}

	c, err := calc.Evaluate(3, 4, calc.Add)
	if err != nil {
		t.Fatalf("evaluating: %v", err)
	}
	s.RecordCalculation(c)

	last, ok := s.LastCalculation()
	if !ok {
		t.Fatal("expected a last calculation")
	}
	if last.Expression != "3 + 4" || last.Result != 7 {
		t.Fatalf("unexpected last calculation: %+v", last)
	}

	if got := s.History(); len(got) != 1 || got[0].Result != 7 {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestSessionClearHistoryForgetsLastCalculation(t *testing.T) {
	st := NewStore()
	s := st.Get("abc")

	c, err := calc.Evaluate(2, 10, calc.Power)
	if err != nil {
		t.Fatalf("evaluating: %v", err)
	}
	s.RecordCalculation(c)

	s.ClearHistory()

	if got := s.History(); len(got) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(got))
	}
	if _, ok := s.LastCalculation(); ok {
		t.Fatal("expected last calculation to be forgotten after clear")
	}
}

func TestSessionHistoryIsCapped(t *testing.T) {
	st := NewStore()
	s := st.Get("abc")

	for i := 1; i <= history.Capacity+5; i++ {
		c, err := calc.Evaluate(float64(i), 1, calc.Multiply)
		if err != nil {
			t.Fatalf("evaluating: %v", err)
		}
		s.RecordCalculation(c)
	}

	got := s.History()
	if len(got) != history.Capacity {
		t.Fatalf("expected history length %d, got %d", history.Capacity, len(got))
	}
	if got[0].Result != float64(history.Capacity+5) {
		t.Fatalf("expected newest entry first, got %g", got[0].Result)
	}
}

func TestMiddlewareMintsAndEchoesSessionID(t *testing.T) {
	var ctxID string

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = IDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("mints when absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/calculator/history", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		headerID := w.Result().Header.Get(Header)
		if headerID == "" {
			t.Fatal("expected X-Session-ID header to be set")
		}
		if _, err := uuid.Parse(headerID); err != nil {
			t.Fatalf("expected UUID session id, got %q: %v", headerID, err)
		}
		if ctxID != headerID {
			t.Fatalf("expected context id %q to match header %q", ctxID, headerID)
		}
	})

	t.Run("echoes when present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/calculator/history", nil)
		r.Header.Set(Header, "session-42")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if got := w.Result().Header.Get(Header); got != "session-42" {
			t.Fatalf("expected echoed session id, got %q", got)
		}
		if ctxID != "session-42" {
			t.Fatalf("expected context id %q, got %q", "session-42", ctxID)
		}
	})
}
