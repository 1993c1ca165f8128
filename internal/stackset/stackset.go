// Package stackset stores the managed clients of every workspace.
//
// Each workspace owns a stack: a doubly-linked list of clients kept in an
// arena, a LIFO pool of minimized clients and the workspace layouts. One extra
// stack, addressed by NSP(), holds hidden named-scratchpad clients. Clients are
// addressed by Handle values which stop validating once their node is removed.
package stackset

import (
	"fmt"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

// Workspace is the static configuration of one workspace.
type Workspace struct {
	Name       string
	Gaps       layout.Gaps
	Layouts    []layout.Layout
	TogLayouts []layout.Layout
}

// StackSet is the set of workspace stacks plus the scratchpad stack.
type StackSet struct {
	stacks   []*stack
	curr     int
	last     int
	size     int
	monitors []layout.Rect
	shown    []int
}

// New builds one stack per workspace plus the scratchpad stack. Workspace i
// starts on monitor i; extra workspaces start hidden on the first monitor.
func New(workspaces []Workspace, monitors []layout.Rect) (*StackSet, error) {
	if len(workspaces) == 0 {
		return nil, ErrNoWorkspaces
	}
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}
	ss := &StackSet{
		stacks:   make([]*stack, len(workspaces)+1),
		size:     len(workspaces),
		monitors: append([]layout.Rect(nil), monitors...),
		shown:    make([]int, len(monitors)),
	}
	for i, ws := range workspaces {
		if len(ws.Layouts) == 0 {
			return nil, fmt.Errorf("workspace %d (%s): %w", i, ws.Name, ErrNoLayouts)
		}
		s := newStack(ws.Name, ws.Gaps, append([]layout.Layout(nil), ws.Layouts...), append([]layout.Layout(nil), ws.TogLayouts...))
		ss.stacks[i] = s
	}
	ss.stacks[ss.size] = newStack("nsp", layout.Gaps{}, nil, nil)
	for m := range ss.shown {
		ss.shown[m] = none
	}
	for i := 0; i <= ss.size; i++ {
		m := 0
		if i < ss.size && i < len(monitors) {
			m = i
			ss.shown[m] = i
		}
		ss.setMonitor(i, m)
	}
	return ss, nil
}

// Close empties every stack and minimized pool and returns the clients that
// were still managed.
func (ss *StackSet) Close() []*state.Client {
	var out []*state.Client
	for _, s := range ss.stacks {
		for s.size > 0 {
			out = append(out, s.removeLast())
		}
		for c := s.popMinimized(); c != nil; c = s.popMinimized() {
			out = append(out, c)
		}
	}
	return out
}

func (ss *StackSet) index(ws int) int {
	if ws == ss.size {
		return ws
	}
	ws %= ss.size
	if ws < 0 {
		ws += ss.size
	}
	return ws
}

func (ss *StackSet) stack(ws int) *stack {
	return ss.stacks[ss.index(ws)]
}

// Size returns the number of regular workspaces.
func (ss *StackSet) Size() int { return ss.size }

// NSP returns the index of the scratchpad stack.
func (ss *StackSet) NSP() int { return ss.size }

// Curr returns the current workspace.
func (ss *StackSet) Curr() int { return ss.curr }

// Last returns the previously current workspace.
func (ss *StackSet) Last() int { return ss.last }

// PrevIndex returns the workspace before the current one, wrapping around.
func (ss *StackSet) PrevIndex() int {
	if ss.curr-1 < 0 {
		return ss.size - 1
	}
	return ss.curr - 1
}

// NextIndex returns the workspace after the current one, wrapping around.
func (ss *StackSet) NextIndex() int {
	if ss.curr+1 >= ss.size {
		return 0
	}
	return ss.curr + 1
}

// SetCurr makes ws current and remembers the old one.
func (ss *StackSet) SetCurr(ws int) {
	ss.last = ss.curr
	ws %= ss.size
	if ws < 0 {
		ws += ss.size
	}
	ss.curr = ws
}

func (ss *StackSet) IsCurr(ws int) bool  { return ws == ss.curr }
func (ss *StackSet) IsNSP(ws int) bool   { return ws == ss.size }
func (ss *StackSet) IsEmpty(ws int) bool { return ss.stack(ws).size <= 0 }
func (ss *StackSet) Name(ws int) string  { return ss.stack(ws).name }

// StackSize returns the number of clients in the stack of ws.
func (ss *StackSet) StackSize(ws int) int { return ss.stack(ws).size }

// Region returns the area available to the layouts of ws.
func (ss *StackSet) Region(ws int) layout.Rect { return ss.stack(ws).region }

// Monitors returns the number of monitors.
func (ss *StackSet) Monitors() int { return len(ss.monitors) }

// Monitor returns the monitor ws is bound to.
func (ss *StackSet) Monitor(ws int) int { return ss.stack(ws).monitor }

// MonitorRegion returns the full area of the monitor ws is bound to.
func (ss *StackSet) MonitorRegion(ws int) layout.Rect {
	return ss.monitors[ss.stack(ws).monitor]
}

// SetMonitor binds ws to monitor m and recomputes its region.
func (ss *StackSet) SetMonitor(ws, m int) {
	if m < 0 || m >= len(ss.monitors) {
		return
	}
	ss.setMonitor(ss.index(ws), m)
}

func (ss *StackSet) setMonitor(ws, m int) {
	s := ss.stacks[ws]
	s.monitor = m
	s.region = s.gaps.Shrink(ss.monitors[m])
}

// SwapMonitors exchanges the monitors of workspaces a and b. The monitor that
// showed a now shows b; if b was shown on its own monitor, a takes its place.
func (ss *StackSet) SwapMonitors(a, b int) {
	a, b = ss.index(a), ss.index(b)
	if a == b {
		return
	}
	ma, mb := ss.stacks[a].monitor, ss.stacks[b].monitor
	ss.setMonitor(a, mb)
	ss.setMonitor(b, ma)
	aShown, bShown := ss.shown[ma] == a, ss.shown[mb] == b
	if aShown {
		ss.shown[ma] = b
	}
	if bShown {
		ss.shown[mb] = a
	}
}

// Visible reports whether ws is displayed on its monitor.
func (ss *StackSet) Visible(ws int) bool {
	if ss.IsNSP(ws) {
		return false
	}
	ws = ss.index(ws)
	return ss.shown[ss.stacks[ws].monitor] == ws
}

// Shown returns the workspace displayed on monitor m, or -1.
func (ss *StackSet) Shown(m int) int {
	if m < 0 || m >= len(ss.shown) {
		return none
	}
	return ss.shown[m]
}
