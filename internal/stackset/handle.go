package stackset

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

// Handle refers to a client node inside a stack. The zero Handle refers to
// nothing, and a handle stops validating once its node is removed.
type Handle struct {
	ws   int
	slot int
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// WS returns the workspace the handle points into.
func (h Handle) WS() int { return h.ws }

func (ss *StackSet) handle(ws, slot int) Handle {
	if slot == none {
		return Handle{}
	}
	return Handle{ws: ws, slot: slot, gen: ss.stacks[ws].nodes[slot].gen}
}

func (ss *StackSet) node(h Handle) *node {
	if h.gen == 0 || h.ws < 0 || h.ws > ss.size {
		return nil
	}
	s := ss.stacks[h.ws]
	if h.slot < 0 || h.slot >= len(s.nodes) {
		return nil
	}
	n := &s.nodes[h.slot]
	if !n.used || n.gen != h.gen {
		return nil
	}
	return n
}

// Valid reports whether h still refers to a node.
func (ss *StackSet) Valid(h Handle) bool { return ss.node(h) != nil }

// Client returns the client behind h, or nil.
func (ss *StackSet) Client(h Handle) *state.Client {
	if n := ss.node(h); n != nil {
		return n.cli
	}
	return nil
}

// AddEnd inserts c after the current node of its workspace and selects it.
func (ss *StackSet) AddEnd(c *state.Client) Handle {
	return ss.add(c, (*stack).insertAfterCurr)
}

// AddStart inserts c before the current node of its workspace and selects it.
func (ss *StackSet) AddStart(c *state.Client) Handle {
	return ss.add(c, (*stack).insertBeforeCurr)
}

func (ss *StackSet) add(c *state.Client, insert func(*stack, int)) Handle {
	if c == nil {
		return Handle{}
	}
	c.WS = ss.index(c.WS)
	s := ss.stacks[c.WS]
	slot := s.alloc(c)
	if c.NSP {
		s.nsp = slot
	}
	insert(s, slot)
	return ss.handle(c.WS, slot)
}

// Remove detaches the node behind h and hands its client back to the caller.
// Removing the last node selects its predecessor; removing any other node
// selects its successor.
func (ss *StackSet) Remove(h Handle) *state.Client {
	if ss.node(h) == nil {
		return nil
	}
	s := ss.stacks[h.ws]
	if h.slot == s.last {
		return s.removeLast()
	}
	return s.removeInner(h.slot)
}

// CurrClient returns the selected client of ws.
func (ss *StackSet) CurrClient(ws int) Handle {
	ws = ss.index(ws)
	return ss.handle(ws, ss.stacks[ws].curr)
}

// PrevClient returns the previously selected client of ws.
func (ss *StackSet) PrevClient(ws int) Handle {
	ws = ss.index(ws)
	return ss.handle(ws, ss.stacks[ws].prev)
}

// HeadClient returns the first client of ws.
func (ss *StackSet) HeadClient(ws int) Handle {
	ws = ss.index(ws)
	return ss.handle(ws, ss.stacks[ws].head)
}

// LastClient returns the final client of ws.
func (ss *StackSet) LastClient(ws int) Handle {
	ws = ss.index(ws)
	return ss.handle(ws, ss.stacks[ws].last)
}

// Next returns the node after h.
func (ss *StackSet) Next(h Handle) Handle {
	n := ss.node(h)
	if n == nil {
		return Handle{}
	}
	return ss.handle(h.ws, n.next)
}

// Prev returns the node before h.
func (ss *StackSet) Prev(h Handle) Handle {
	n := ss.node(h)
	if n == nil {
		return Handle{}
	}
	return ss.handle(h.ws, n.prev)
}

// Handles lists the nodes of ws from head to last.
func (ss *StackSet) Handles(ws int) []Handle {
	ws = ss.index(ws)
	s := ss.stacks[ws]
	out := make([]Handle, 0, s.size)
	for i := s.head; i != none; i = s.nodes[i].next {
		out = append(out, ss.handle(ws, i))
	}
	return out
}

func (ss *StackSet) IsCurrClient(h Handle) bool {
	return ss.node(h) != nil && ss.stacks[h.ws].curr == h.slot
}

func (ss *StackSet) IsPrevClient(h Handle) bool {
	return ss.node(h) != nil && ss.stacks[h.ws].prev == h.slot
}

func (ss *StackSet) IsHead(h Handle) bool {
	return ss.node(h) != nil && ss.stacks[h.ws].head == h.slot
}

func (ss *StackSet) IsLast(h Handle) bool {
	return ss.node(h) != nil && ss.stacks[h.ws].last == h.slot
}

// SetCurrClient selects h in its workspace. The old selection becomes the
// previous one.
func (ss *StackSet) SetCurrClient(h Handle) {
	if ss.node(h) == nil {
		return
	}
	ss.stacks[h.ws].setCurr(h.slot)
}

// ClientRegion returns the cached region of h, used as its free geometry.
func (ss *StackSet) ClientRegion(h Handle) layout.Rect {
	if n := ss.node(h); n != nil {
		return n.region
	}
	return layout.Rect{}
}

// SetClientRegion stores r as the cached region of h.
func (ss *StackSet) SetClientRegion(h Handle, r layout.Rect) {
	if n := ss.node(h); n != nil {
		n.region = r
	}
}

// Swap exchanges the clients of two nodes of the same stack. The list itself
// keeps its shape, so each handle now refers to the other client.
func (ss *StackSet) Swap(h1, h2 Handle) bool {
	n1, n2 := ss.node(h1), ss.node(h2)
	if n1 == nil || n2 == nil || h1.ws != h2.ws {
		return false
	}
	n1.cli, n2.cli = n2.cli, n1.cli
	if n1.cli.NSP || n2.cli.NSP {
		ss.stacks[h1.ws].rescanNSP()
	}
	return true
}

// FindIn returns the first client of ws accepted by pred.
func (ss *StackSet) FindIn(ws int, pred func(*state.Client) bool) Handle {
	ws = ss.index(ws)
	s := ss.stacks[ws]
	for i := s.head; i != none; i = s.nodes[i].next {
		if pred(s.nodes[i].cli) {
			return ss.handle(ws, i)
		}
	}
	return Handle{}
}

// Find searches the current workspace first, then the others in index order
// and the scratchpad stack last.
func (ss *StackSet) Find(pred func(*state.Client) bool) Handle {
	if h := ss.FindIn(ss.curr, pred); !h.IsZero() {
		return h
	}
	for i := 0; i <= ss.size; i++ {
		if i == ss.curr {
			continue
		}
		if h := ss.FindIn(i, pred); !h.IsZero() {
			return h
		}
	}
	return Handle{}
}

// FindNSP returns the first scratchpad client, current workspace first.
func (ss *StackSet) FindNSP() Handle {
	if s := ss.stacks[ss.curr]; s.nsp != none {
		return ss.handle(ss.curr, s.nsp)
	}
	for i := 0; i <= ss.size; i++ {
		if i == ss.curr {
			continue
		}
		if s := ss.stacks[i]; s.nsp != none {
			return ss.handle(i, s.nsp)
		}
	}
	return Handle{}
}
