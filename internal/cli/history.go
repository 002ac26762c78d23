package cli

import (
	"time"

	"github.com/agbru/linecalc/internal/calc"
)

// HistoryEntry records one evaluated expression within a session.
type HistoryEntry struct {
	// Expr is the parsed expression.
	Expr calc.Expression
	// Result is the evaluated value. Meaningless when Err is non-nil.
	Result float64
	// Err is the evaluation failure, if any. Parse failures never reach
	// the history.
	Err error
	// At is the wall-clock time of the evaluation.
	At time.Time
}

// History is a bounded in-session record of evaluations. It is not
// persisted; a new session always starts empty. Not safe for concurrent
// use, matching the single-threaded driver loop.
type History struct {
	entries []HistoryEntry
	limit   int
}

// NewHistory creates a history bounded to limit entries. The oldest entry
// is evicted once the limit is exceeded.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Add appends an entry, evicting the oldest when full.
func (h *History) Add(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
}

// Entries returns the recorded entries, oldest first. The returned slice
// is shared; callers must not modify it.
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Last returns the most recent entry, or false when the history is empty.
func (h *History) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
