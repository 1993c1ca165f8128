package workspace

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
)

// Change makes ws current. The monitors of the old and new workspace are
// exchanged, both are laid out again, and focus moves to ws.
func (c *Controller) Change(ws int) error {
	if !c.validWS(ws) || c.ss.IsCurr(ws) {
		return nil
	}
	ss := c.ss
	curr := ss.Curr()
	currMon, newMon := ss.MonitorRegion(curr), ss.MonitorRegion(ws)
	ss.SwapMonitors(curr, ws)
	c.shiftFree(curr, currMon, newMon)
	c.shiftFree(ws, newMon, currMon)

	c.relayout(curr)
	c.relayout(ws)

	c.Unfocus(curr)
	ss.SetCurr(ws)
	return c.Focus(ws)
}

// shiftFree moves the floating geometry of free clients of ws from one
// monitor to another.
func (c *Controller) shiftFree(ws int, from, to layout.Rect) {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return
	}
	for _, h := range c.ss.Handles(ws) {
		if cli := c.ss.Client(h); cli.IsFree() {
			cli.FloatRegion = cli.FloatRegion.Translate(dx, dy)
		}
	}
}

// Focus focuses the current client of ws and restacks the workspace.
// Free and fullscreen clients stay above tiled ones, the focused client is
// topmost within its group and every other client keeps its relative
// on-screen order.
func (c *Controller) Focus(ws int) error {
	ss := c.ss
	n := ss.StackSize(ws)
	if n <= 0 {
		c.warn("clear active window", 0, c.display.ClearActiveWindow())
		return nil
	}
	handles := ss.Handles(ws)
	atc := 0
	for _, h := range handles {
		if ss.Client(h).AboveTiled() {
			atc++
		}
	}
	tiled := c.tiledCount(ws)

	c.RemoveEnterNotifyMask(ws)
	defer c.AddEnterNotifyMask(ws)

	curr := ss.CurrClient(ws)
	cc := ss.Client(curr)
	windows := make([]state.Window, n)
	if cc.AboveTiled() {
		windows[0] = cc.Win
	} else {
		windows[atc] = cc.Win
	}
	c.focusClient(curr)
	c.updateClient(curr, tiled)

	if n > 1 {
		order, err := c.display.StackingOrder()
		if err != nil {
			return &FatalError{Op: "query stacking order", Err: err}
		}
		seen := make(map[state.Window]bool, n)
		below := n
		place := func(h stackset.Handle) {
			w := ss.Client(h).Win
			seen[w] = true
			if ss.Client(h).AboveTiled() {
				atc--
				windows[atc] = w
			} else {
				below--
				windows[below] = w
			}
			c.unfocusClient(h)
			c.updateClient(h, tiled)
		}
		for _, w := range order {
			h := c.FindWindow(ws, w)
			if h.IsZero() || ss.IsCurrClient(h) || seen[w] {
				continue
			}
			place(h)
		}
		// Clients missing from the reported order are still restacked.
		missing := 0
		for _, h := range handles {
			if !ss.IsCurrClient(h) && !seen[ss.Client(h).Win] {
				missing++
				place(h)
			}
		}
		if missing > 0 && c.logger != nil {
			c.logger.Debugf("stacking order misses %d of %d clients on workspace %d", missing, n, ws)
		}
	}

	c.warn("restack", windows[0], c.display.Restack(windows))
	return nil
}

// Unfocus re-arms the click-to-focus grabs on every client of ws.
func (c *Controller) Unfocus(ws int) {
	for _, h := range c.ss.Handles(ws) {
		c.unfocusClient(h)
	}
}

func (c *Controller) focusClient(h stackset.Handle) {
	cli := c.ss.Client(h)
	cli.Urgent = false
	c.warn("ungrab buttons", cli.Win, c.display.UngrabButtons(cli.Win))
	c.warn("set input focus", cli.Win, c.display.SetInputFocus(cli.Win))
	c.warn("set active window", cli.Win, c.display.SetActiveWindow(cli.Win))
}

func (c *Controller) unfocusClient(h stackset.Handle) {
	cli := c.ss.Client(h)
	c.warn("grab buttons", cli.Win, c.display.GrabButtons(cli.Win))
}

// AddEnterNotifyMask turns enter-notify events on for every client of ws.
func (c *Controller) AddEnterNotifyMask(ws int) {
	for _, h := range c.ss.Handles(ws) {
		cli := c.ss.Client(h)
		c.warn("select input", cli.Win, c.display.SelectInput(cli.Win, true))
	}
}

// RemoveEnterNotifyMask turns enter-notify events off for every client of ws.
func (c *Controller) RemoveEnterNotifyMask(ws int) {
	for _, h := range c.ss.Handles(ws) {
		cli := c.ss.Client(h)
		c.warn("select input", cli.Win, c.display.SelectInput(cli.Win, false))
	}
}

// FindWindow returns the client of ws managing w.
func (c *Controller) FindWindow(ws int, w state.Window) stackset.Handle {
	return c.ss.FindIn(ws, func(cli *state.Client) bool { return cli.Win == w })
}

// FindUrgent returns the first urgent client of ws.
func (c *Controller) FindUrgent(ws int) stackset.Handle {
	return c.ss.FindIn(ws, func(cli *state.Client) bool { return cli.Urgent })
}

// FindFixed returns the first docked client of ws.
func (c *Controller) FindFixed(ws int) stackset.Handle {
	return c.ss.FindIn(ws, func(cli *state.Client) bool { return cli.Dock.Docked() })
}

// FindAny returns the client managing w on any workspace.
func (c *Controller) FindAny(w state.Window) stackset.Handle {
	return c.ss.Find(func(cli *state.Client) bool { return cli.Win == w })
}
