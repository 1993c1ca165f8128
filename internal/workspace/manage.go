package workspace

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
)

// Manage classifies a newly mapped window and inserts it into its workspace.
// Override-redirect and already managed windows are ignored.
func (c *Controller) Manage(w state.Window, attrs state.Attributes) error {
	if attrs.OverrideRedirect || !c.FindAny(w).IsZero() {
		return nil
	}
	cli, follow := c.rules.NewClient(w, attrs, c.ss)
	if follow {
		if err := c.Change(cli.WS); err != nil {
			return err
		}
	}
	if cli.IsFree() {
		cli.FloatRegion = cli.Free.Apply(cli.FloatRegion, c.ss.Region(cli.WS))
	}
	h := c.ss.AddEnd(cli)
	c.warn("select input", w, c.display.SelectInput(w, true))
	if cli.Fullscreen {
		c.setFullscreen(h, true)
	}
	if c.logger != nil {
		c.logger.Debugf("managing %s on workspace %d", cli, h.WS())
	}
	if !c.ss.IsCurr(h.WS()) {
		c.unfocusClient(h)
	}
	return c.refresh(h.WS())
}

// Unmanage forgets a destroyed window, wherever it is kept.
func (c *Controller) Unmanage(w state.Window) error {
	h := c.FindAny(w)
	if h.IsZero() {
		c.ss.RemoveMinimized(w)
		return nil
	}
	ws := h.WS()
	c.ss.Remove(h)
	return c.refresh(ws)
}

// SetUrgent flags w as demanding attention. The focused client never is.
func (c *Controller) SetUrgent(w state.Window, urgent bool) {
	h := c.FindAny(w)
	if h.IsZero() {
		return
	}
	if urgent && c.ss.IsCurr(h.WS()) && c.ss.IsCurrClient(h) {
		return
	}
	c.ss.Client(h).Urgent = urgent
	c.updateOne(h)
}

// UpdateTitle stores a new title for w.
func (c *Controller) UpdateTitle(w state.Window, title string) {
	if cli := c.ss.Client(c.FindAny(w)); cli != nil {
		cli.Title = title
	}
}

// SetFullscreen applies a fullscreen request for w.
func (c *Controller) SetFullscreen(w state.Window, on bool) error {
	h := c.FindAny(w)
	if h.IsZero() {
		return nil
	}
	c.setFullscreen(h, on)
	return c.refresh(h.WS())
}

// ToggleFullscreen flips the fullscreen state of w.
func (c *Controller) ToggleFullscreen(w state.Window) error {
	h := c.FindAny(w)
	if h.IsZero() {
		return nil
	}
	return c.SetFullscreen(w, !c.ss.Client(h).Fullscreen)
}

// setFullscreen records the fullscreen state of h and publishes it on the
// window.
func (c *Controller) setFullscreen(h stackset.Handle, on bool) {
	cli := c.ss.Client(h)
	cli.Fullscreen = on
	c.warn("set fullscreen state", cli.Win, c.display.SetFullscreenState(cli.Win, on))
}

// Activate switches to the workspace of w and focuses it.
func (c *Controller) Activate(w state.Window) error {
	h := c.FindAny(w)
	if h.IsZero() || c.ss.IsNSP(h.WS()) {
		return nil
	}
	if err := c.Change(h.WS()); err != nil {
		return err
	}
	return c.ClientFocus(h, SelectSelf)
}

// FocusWindow follows the mouse into w when the current layout asks for it.
func (c *Controller) FocusWindow(w state.Window) error {
	ws := c.ss.Curr()
	if !c.ss.CurrLayout(ws).FollowMouse {
		return nil
	}
	h := c.FindWindow(ws, w)
	if h.IsZero() || c.ss.IsCurrClient(h) {
		return nil
	}
	return c.ClientFocus(h, SelectSelf)
}

// ToggleNSP shows the named scratchpad on the current workspace, or hides it
// again when it is already there.
func (c *Controller) ToggleNSP() error {
	ss := c.ss
	h := ss.FindNSP()
	if h.IsZero() {
		return nil
	}
	if h.WS() == ss.Curr() {
		return c.send(h, ss.NSP())
	}
	cli := ss.Client(h)
	if !cli.IsFree() {
		cli.Free = layout.PlacementScratchpad
	}
	return c.send(h, ss.Curr())
}

// NextLayout cycles the active layout set of ws.
func (c *Controller) NextLayout(ws int) {
	ss := c.ss
	if ss.IsTogLayout(ws) {
		ss.SetTogLayout(ws, ss.TogLayoutIdx(ws)+1)
	} else {
		ss.SetLayout(ws, ss.LayoutIdx(ws)+1)
	}
	c.relayout(ws)
}

// ToggleLayout turns overlay layout i on, or off when it is already active.
func (c *Controller) ToggleLayout(ws, i int) {
	ss := c.ss
	if ss.IsTogLayout(ws) && ss.TogLayoutIdx(ws) == i {
		ss.SetTogLayout(ws, -1)
	} else {
		ss.SetTogLayout(ws, i)
	}
	c.relayout(ws)
}

// Reconfigure pushes the current geometry of w again, answering a configure
// request from the client. It reports whether w is managed.
func (c *Controller) Reconfigure(w state.Window) bool {
	h := c.FindAny(w)
	if h.IsZero() {
		return false
	}
	c.updateOne(h)
	return true
}

// Shutdown empties the managed state and puts every window back on screen
// without a border, so none stays parked off-screen once the manager is gone.
// Windows keep their last tiled or floating geometry; minimized and
// never-arranged ones cover the current monitor. It returns the number of
// released windows.
func (c *Controller) Shutdown() int {
	ss := c.ss
	screen := ss.MonitorRegion(ss.Curr())
	regions := make(map[state.Window]layout.Rect)
	for ws := 0; ws <= ss.Size(); ws++ {
		for _, h := range ss.Handles(ws) {
			regions[ss.Client(h).Win] = ss.ClientRegion(h)
		}
	}
	released := ss.Close()
	for _, cli := range released {
		r, ok := regions[cli.Win]
		if !ok || r.Empty() {
			r = cli.FloatRegion
		}
		if r.Empty() {
			r = screen
		}
		c.warn("select input", cli.Win, c.display.SelectInput(cli.Win, false))
		c.warn("ungrab buttons", cli.Win, c.display.UngrabButtons(cli.Win))
		c.warn("configure", cli.Win, c.display.Configure(cli.Win, Geometry{Rect: r}))
	}
	c.warn("clear active window", 0, c.display.ClearActiveWindow())
	return len(released)
}
