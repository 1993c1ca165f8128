package stackset

import "github.com/hyprpal/stackwm/internal/state"

// PushMinimized adds c to the minimized pool of its workspace.
func (ss *StackSet) PushMinimized(c *state.Client) {
	if c == nil {
		return
	}
	c.WS = ss.index(c.WS)
	ss.stacks[c.WS].pushMinimized(c)
}

// PopMinimized removes and returns the most recently minimized client of ws.
func (ss *StackSet) PopMinimized(ws int) *state.Client {
	return ss.stack(ws).popMinimized()
}

// RemoveMinimized drops the minimized client for win, searching the current
// workspace first. The remaining clients keep their order.
func (ss *StackSet) RemoveMinimized(win state.Window) *state.Client {
	if c := ss.stacks[ss.curr].removeMinimized(win); c != nil {
		return c
	}
	for i := 0; i <= ss.size; i++ {
		if i == ss.curr {
			continue
		}
		if c := ss.stacks[i].removeMinimized(win); c != nil {
			return c
		}
	}
	return nil
}

// MinimizedNum returns the number of minimized clients of ws.
func (ss *StackSet) MinimizedNum(ws int) int {
	return len(ss.stack(ws).minimized)
}

// MinimizedCap returns the allocated size of the minimized pool of ws.
func (ss *StackSet) MinimizedCap(ws int) int {
	return cap(ss.stack(ws).minimized)
}

// Minimized returns the minimized clients of ws, oldest first.
func (ss *StackSet) Minimized(ws int) []*state.Client {
	return append([]*state.Client(nil), ss.stack(ws).minimized...)
}
