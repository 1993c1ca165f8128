package stackset

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

const none = -1

// minimizedStep is the growth and shrink step of the minimized pool.
const minimizedStep = 32

type node struct {
	cli    *state.Client
	prev   int
	next   int
	region layout.Rect
	gen    uint32
	used   bool
}

// stack is the ordered client list of one workspace. Nodes live in an arena
// and link to each other by slot index.
type stack struct {
	name  string
	nodes []node
	free  []int

	head, last int
	curr, prev int
	nsp        int
	size       int

	gaps    layout.Gaps
	region  layout.Rect
	monitor int

	layouts    []layout.Layout
	togLayouts []layout.Layout
	layoutIdx  int
	togIdx     int

	minimized []*state.Client
}

func newStack(name string, gaps layout.Gaps, layouts, togLayouts []layout.Layout) *stack {
	return &stack{
		name:       name,
		head:       none,
		last:       none,
		curr:       none,
		prev:       none,
		nsp:        none,
		gaps:       gaps,
		layouts:    layouts,
		togLayouts: togLayouts,
		togIdx:     none,
		minimized:  make([]*state.Client, 0, minimizedStep),
	}
}

func (s *stack) alloc(c *state.Client) int {
	var slot int
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nodes = append(s.nodes, node{})
		slot = len(s.nodes) - 1
	}
	n := &s.nodes[slot]
	n.cli = c
	n.prev, n.next = none, none
	n.region = c.FloatRegion
	n.gen++
	n.used = true
	return slot
}

func (s *stack) release(slot int) *state.Client {
	n := &s.nodes[slot]
	c := n.cli
	n.cli = nil
	n.used = false
	n.prev, n.next = none, none
	s.free = append(s.free, slot)
	return c
}

func (s *stack) setCurr(slot int) {
	if slot == s.curr {
		return
	}
	s.prev = s.curr
	s.curr = slot
}

func (s *stack) rescanNSP() {
	for i := s.head; i != none; i = s.nodes[i].next {
		if s.nodes[i].cli.NSP {
			s.nsp = i
			return
		}
	}
	s.nsp = none
}

func (s *stack) insertAfterCurr(slot int) {
	n := &s.nodes[slot]
	if s.size < 1 {
		s.head, s.last = slot, slot
	} else {
		cur := &s.nodes[s.curr]
		n.prev = s.curr
		n.next = cur.next
		if cur.next != none {
			s.nodes[cur.next].prev = slot
		} else {
			s.last = slot
		}
		cur.next = slot
	}
	s.setCurr(slot)
	s.size++
}

func (s *stack) insertBeforeCurr(slot int) {
	n := &s.nodes[slot]
	if s.size < 1 {
		s.head, s.last = slot, slot
	} else {
		cur := &s.nodes[s.curr]
		n.next = s.curr
		n.prev = cur.prev
		if cur.prev != none {
			s.nodes[cur.prev].next = slot
		} else {
			s.head = slot
		}
		cur.prev = slot
	}
	s.setCurr(slot)
	s.size++
}

// removeLast detaches the last node. The predecessor becomes current.
func (s *stack) removeLast() *state.Client {
	if s.size < 1 {
		return nil
	}
	slot := s.last
	if s.size == 1 {
		s.head, s.last, s.curr = none, none, none
	} else {
		p := s.nodes[slot].prev
		s.setCurr(p)
		s.nodes[p].next = none
		s.last = p
	}
	return s.finishRemove(slot)
}

// removeInner detaches a node that is not the last one. Its successor becomes
// current, even when the removed node was not selected.
func (s *stack) removeInner(slot int) *state.Client {
	if s.size == 0 || slot == s.last {
		return nil
	}
	n := s.nodes[slot]
	s.setCurr(n.next)
	if slot == s.head {
		s.head = n.next
		s.nodes[n.next].prev = none
	} else {
		s.nodes[n.prev].next = n.next
		s.nodes[n.next].prev = n.prev
	}
	return s.finishRemove(slot)
}

func (s *stack) finishRemove(slot int) *state.Client {
	wasNSP := s.nodes[slot].cli.NSP
	if s.prev == slot {
		s.prev = none
	}
	if s.curr == slot {
		s.curr = none
	}
	c := s.release(slot)
	s.size--
	if wasNSP || s.nsp == slot {
		s.rescanNSP()
	}
	return c
}

func (s *stack) pushMinimized(c *state.Client) {
	s.resizeMinimized(len(s.minimized) + 1)
	s.minimized = append(s.minimized, c)
}

func (s *stack) popMinimized() *state.Client {
	n := len(s.minimized)
	if n == 0 {
		return nil
	}
	c := s.minimized[n-1]
	s.minimized[n-1] = nil
	s.minimized = s.minimized[:n-1]
	s.resizeMinimized(n - 1)
	return c
}

func (s *stack) removeMinimized(win state.Window) *state.Client {
	for i, c := range s.minimized {
		if c.Win != win {
			continue
		}
		copy(s.minimized[i:], s.minimized[i+1:])
		s.minimized[len(s.minimized)-1] = nil
		s.minimized = s.minimized[:len(s.minimized)-1]
		return c
	}
	return nil
}

// resizeMinimized keeps the pool capacity at the smallest multiple of
// minimizedStep that holds count clients.
func (s *stack) resizeMinimized(count int) {
	size := minimizedStep
	for size < count {
		size += minimizedStep
	}
	if size == cap(s.minimized) {
		return
	}
	grown := make([]*state.Client, len(s.minimized), size)
	copy(grown, s.minimized)
	s.minimized = grown
}

func (s *stack) activeLayouts() ([]layout.Layout, int) {
	if s.togIdx == none {
		return s.layouts, s.layoutIdx
	}
	return s.togLayouts, s.togIdx
}
