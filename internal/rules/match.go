package rules

import (
	"sync"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/metrics"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
	"github.com/hyprpal/stackwm/internal/util"
)

// WindowInfo queries the window properties used for classification.
type WindowInfo interface {
	SizeHints(w state.Window) (state.SizeHints, error)
	ClassAndName(w state.Window) (class, name string, err error)
	Title(w state.Window) (string, error)
}

// Engine classifies new windows against an ordered rule list.
type Engine struct {
	mu      sync.RWMutex
	rules   []Rule
	info    WindowInfo
	logger  *util.Logger
	metrics *metrics.Collector
}

// NewEngine returns an engine evaluating rules in order.
func NewEngine(rules []Rule, info WindowInfo, logger *util.Logger, m *metrics.Collector) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...), info: info, logger: logger, metrics: m}
}

// SetRules replaces the rule list. Managed clients are left alone.
func (e *Engine) SetRules(rules []Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append([]Rule(nil), rules...)
}

// Rules returns a copy of the active rule list.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Rule(nil), e.rules...)
}

// Match returns the first rule matching c.
func (e *Engine) Match(c *state.Client) (Rule, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.rules {
		if r.Matches(c) {
			return r, true
		}
	}
	return Rule{}, false
}

// NewClient builds the client for window w. Fixed-size windows float centered,
// the rest start tiled on the current workspace until a rule says otherwise.
// The second result asks the caller to switch to the client workspace before
// inserting it.
func (e *Engine) NewClient(w state.Window, attrs state.Attributes, ss *stackset.StackSet) (*state.Client, bool) {
	c := &state.Client{Win: w, FloatRegion: attrs.Geometry}
	if hints, err := e.info.SizeHints(w); err != nil {
		e.debugf("size hints for 0x%x: %v", uint32(w), err)
	} else if hints.Fixed() {
		c.Free = layout.PlacementCenter
	}
	c.WS = ss.Curr()
	class, name, err := e.info.ClassAndName(w)
	if err != nil {
		e.debugf("class for 0x%x: %v", uint32(w), err)
	}
	c.Class, c.Name = class, name
	if c.Title, err = e.info.Title(w); err != nil {
		e.debugf("title for 0x%x: %v", uint32(w), err)
	}

	follow := false
	if r, ok := e.Match(c); ok {
		c.WS = r.Workspace.Resolve(ss)
		c.Fullscreen = r.Fullscreen
		c.Free = r.Free
		c.Dock = r.Dock
		follow = r.Follow
		e.metrics.RecordMatch(r.Name)
		e.debugf("rule %s matched %s", r.Name, c)
	} else {
		e.metrics.RecordUnmatched()
	}
	if c.Name == ScratchpadName {
		c.NSP = true
	}
	return c, follow
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debugf(format, args...)
	}
}
