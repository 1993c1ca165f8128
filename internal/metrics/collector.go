package metrics

import (
	"sort"
	"sync"
	"time"
)

// Collector aggregates counters for rule matches and handled events. It is
// read by the control server while the engine loop writes to it.
type Collector struct {
	mu        sync.RWMutex
	enabled   bool
	started   time.Time
	unmatched uint64
	rules     map[string]*RuleMetrics
	events    map[string]*EventMetrics
}

// RuleMetrics captures per-rule counters tracked by the collector.
type RuleMetrics struct {
	Rule        string    `json:"rule"`
	Matched     uint64    `json:"matched"`
	LastMatched time.Time `json:"lastMatched,omitempty"`
}

// EventMetrics counts one kind of handled event.
type EventMetrics struct {
	Kind  string    `json:"kind"`
	Count uint64    `json:"count"`
	Last  time.Time `json:"last,omitempty"`
}

// Totals aggregates counters across a snapshot.
type Totals struct {
	Matched   uint64 `json:"matched"`
	Unmatched uint64 `json:"unmatched"`
	Events    uint64 `json:"events"`
}

// Snapshot is the serializable view of the current metrics state.
type Snapshot struct {
	Enabled bool           `json:"enabled"`
	Started time.Time      `json:"started,omitempty"`
	Totals  Totals         `json:"totals"`
	Rules   []RuleMetrics  `json:"rules,omitempty"`
	Events  []EventMetrics `json:"events,omitempty"`
}

// NewCollector returns a collector with the provided opt-in state.
func NewCollector(enabled bool) *Collector {
	c := &Collector{}
	c.SetEnabled(enabled)
	return c
}

// Enabled reports whether collection is currently active.
func (c *Collector) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// SetEnabled toggles collection, resetting counters when enabling.
func (c *Collector) SetEnabled(enabled bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	c.unmatched = 0
	if !enabled {
		c.rules = nil
		c.events = nil
		c.started = time.Time{}
		return
	}
	c.started = time.Now()
	c.rules = make(map[string]*RuleMetrics)
	c.events = make(map[string]*EventMetrics)
}

// RecordMatch increments the matched counter for a rule.
func (c *Collector) RecordMatch(rule string) {
	c.update(func(now time.Time) {
		if c.rules == nil {
			c.rules = make(map[string]*RuleMetrics)
		}
		m, ok := c.rules[rule]
		if !ok {
			m = &RuleMetrics{Rule: rule}
			c.rules[rule] = m
		}
		m.Matched++
		m.LastMatched = now
	})
}

// RecordUnmatched counts a new window that no rule classified.
func (c *Collector) RecordUnmatched() {
	c.update(func(time.Time) {
		c.unmatched++
	})
}

// RecordEvent counts one handled event of the given kind.
func (c *Collector) RecordEvent(kind string) {
	c.update(func(now time.Time) {
		if c.events == nil {
			c.events = make(map[string]*EventMetrics)
		}
		m, ok := c.events[kind]
		if !ok {
			m = &EventMetrics{Kind: kind}
			c.events[kind] = m
		}
		m.Count++
		m.Last = now
	})
}

func (c *Collector) update(mutate func(time.Time)) {
	if c == nil {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	mutate(now)
}

// Snapshot returns the current counters for serialization or display.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := Snapshot{Enabled: c.enabled}
	if !c.enabled {
		return snap
	}
	snap.Started = c.started
	snap.Totals.Unmatched = c.unmatched
	for _, m := range c.rules {
		snap.Rules = append(snap.Rules, *m)
		snap.Totals.Matched += m.Matched
	}
	for _, m := range c.events {
		snap.Events = append(snap.Events, *m)
		snap.Totals.Events += m.Count
	}
	sort.Slice(snap.Rules, func(i, j int) bool { return snap.Rules[i].Rule < snap.Rules[j].Rule })
	sort.Slice(snap.Events, func(i, j int) bool { return snap.Events[i].Kind < snap.Events[j].Kind })
	return snap
}
