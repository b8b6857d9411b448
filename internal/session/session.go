// Package session owns per-session calculator state: the history ledger and
// the last successful calculation. The ledger is an explicit value owned by
// the session, never a module-level singleton.
package session

import (
	"sync"

	"github.com/google/uuid"

	"smartcalc/internal/calc"
	"smartcalc/internal/history"
)

// Session is the state belonging to one client session. Its mutex makes the
// HTTP call boundary reentrant-safe; the ledger itself stays single-actor.
type Session struct {
	ID string

	mu     sync.Mutex
	ledger *history.Ledger
	last   *calc.Calculation
}

// RecordCalculation appends a successful calculation to the session history
// and remembers it as the last calculation.
func (s *Session) RecordCalculation(c calc.Calculation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Record(c)
	s.last = &c
}

// History returns the session's calculations, most recent first.
func (s *Session) History() []calc.Calculation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Snapshot()
}

// ClearHistory empties the session history. The last calculation is also
// forgotten, so the assistant cannot explain an entry the user discarded.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Clear()
	s.last = nil
}

// LastCalculation returns the most recent successful calculation, if any.
func (s *Session) LastCalculation() (calc.Calculation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return calc.Calculation{}, false
	}
	return *s.last, true
}

// Store hands out sessions by ID, creating them on demand.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it if necessary.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = &Session{ID: id, ledger: history.NewLedger()}
	st.sessions[id] = s
	return s
}

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}
