// Package history keeps a bounded, most-recent-first record of calculations.
package history

import "smartcalc/internal/calc"

// Capacity is the maximum number of entries a Ledger retains.
const Capacity = 10

// Ledger is an ordered record of past calculations, newest first. It carries
// no locking of its own: one ledger belongs to one session, and the session
// serialises access.
type Ledger struct {
	entries []calc.Calculation
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make([]calc.Calculation, 0, Capacity)}
}

// Record inserts c at the front, evicting the oldest entry once the ledger
// is at capacity. It always succeeds.
func (l *Ledger) Record(c calc.Calculation) {
	l.entries = append([]calc.Calculation{c}, l.entries...)
	if len(l.entries) > Capacity {
		l.entries = l.entries[:Capacity]
	}
}

// Clear empties the ledger unconditionally.
func (l *Ledger) Clear() {
	l.entries = l.entries[:0]
}

// Snapshot returns a copy of the entries, most recent first.
func (l *Ledger) Snapshot() []calc.Calculation {
	out := make([]calc.Calculation, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the current number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}
