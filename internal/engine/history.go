package engine

import (
	"sync"
	"time"

	"github.com/hyprpal/stackwm/internal/state"
)

const historyLimit = 128

// EventRecord is one handled windowing event.
type EventRecord struct {
	Timestamp time.Time    `json:"timestamp"`
	Kind      EventKind    `json:"kind"`
	Window    state.Window `json:"window"`
	Error     string       `json:"error,omitempty"`
}

type eventLog struct {
	mu      sync.Mutex
	entries []EventRecord
	limit   int
}

func newEventLog(limit int) *eventLog {
	if limit <= 0 {
		limit = historyLimit
	}
	return &eventLog{limit: limit}
}

func (l *eventLog) record(entry EventRecord) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
	}
	l.entries = append(l.entries, entry)
}

func (l *eventLog) snapshot() []EventRecord {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	return append([]EventRecord(nil), l.entries...)
}
