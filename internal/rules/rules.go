package rules

import (
	"fmt"

	"github.com/hyprpal/stackwm/internal/config"
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
)

// ScratchpadName is the instance name that marks a window as the named
// scratchpad, whatever the rules say.
const ScratchpadName = "stackwm_scratchpad"

// Rule is a compiled classification rule. Empty predicates are ignored and a
// rule without any predicate never matches.
type Rule struct {
	Name       string
	Class      string
	Instance   string
	Title      string
	Workspace  stackset.Selector
	Fullscreen bool
	Free       layout.Placement
	Dock       state.Docking
	Follow     bool
}

// BuildRules compiles the rule section of cfg in order.
func BuildRules(cfg *config.Config) ([]Rule, error) {
	out := make([]Rule, 0, len(cfg.Rules))
	for i, rc := range cfg.Rules {
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i)
		}
		ws, err := stackset.ParseSelector(rc.Workspace)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		free, err := layout.ParsePlacement(rc.Free)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		pos, err := state.ParseFixedPosition(rc.Dock.Position)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		if rc.Dock.Size < 0 || rc.Dock.Size > 1 {
			return nil, fmt.Errorf("rule %s: dock size %v outside [0,1]", name, rc.Dock.Size)
		}
		out = append(out, Rule{
			Name:       name,
			Class:      rc.Class,
			Instance:   rc.Instance,
			Title:      rc.Title,
			Workspace:  ws,
			Fullscreen: rc.Fullscreen,
			Free:       free,
			Dock:       state.Docking{Pos: pos, Size: rc.Dock.Size},
			Follow:     rc.Follow,
		})
	}
	return out, nil
}

// Matches reports whether every non-empty predicate of r equals the
// corresponding client string.
func (r Rule) Matches(c *state.Client) bool {
	if c == nil || (r.Class == "" && r.Instance == "" && r.Title == "") {
		return false
	}
	if r.Class != "" && r.Class != c.Class {
		return false
	}
	if r.Instance != "" && r.Instance != c.Name {
		return false
	}
	if r.Title != "" && r.Title != c.Title {
		return false
	}
	return true
}
