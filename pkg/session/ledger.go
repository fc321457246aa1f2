package session

import "sync"

// Entry is one evaluated expression recorded in a Ledger: the stack
// expression as typed and the exported result of running it.
type Entry struct {
	Expr   string
	Export Export
}

// Ledger accumulates a REPL session's evaluation history, in order. A
// mutex guards it the way the teacher's rule table does, so it is safe to
// share across goroutines; the REPL in cmd/clogcalc adds to it and saves
// it from its single read loop.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends an evaluated expression to the ledger.
func (l *Ledger) Add(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the recorded history, oldest first.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
