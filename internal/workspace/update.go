package workspace

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/stackset"
)

// RunLayout recomputes the region of every client of ws. Docked clients carve
// their strip out of the tiling region, fullscreen clients cover the monitor,
// free clients keep their floating geometry and the rest are arranged by the
// active layout. A floating layout leaves tiled clients where they are.
func (c *Controller) RunLayout(ws int) {
	ss := c.ss
	handles := ss.Handles(ws)
	region := ss.Region(ws)
	tileRegion := region
	for _, h := range handles {
		if d := ss.Client(h).Dock; d.Docked() {
			tileRegion = rules.SetLayoutRegion(tileRegion, d)
		}
	}
	var tiled []stackset.Handle
	for _, h := range handles {
		cli := ss.Client(h)
		switch {
		case cli.Fullscreen:
			ss.SetClientRegion(h, ss.MonitorRegion(ws))
		case cli.Dock.Docked():
			ss.SetClientRegion(h, rules.SetClientRegion(ss.ClientRegion(h), region, cli.Dock))
		case cli.IsFree():
			ss.SetClientRegion(h, cli.FloatRegion)
		default:
			tiled = append(tiled, h)
		}
	}
	rects := ss.CurrLayout(ws).Arrange(tileRegion, len(tiled))
	if rects == nil {
		return
	}
	for i, h := range tiled {
		ss.SetClientRegion(h, rects[i])
	}
}

// Update pushes the region and decoration of every client of ws to the
// display. Enter-notify events are off meanwhile, so windows sliding under
// the pointer do not take the focus.
func (c *Controller) Update(ws int) {
	c.RemoveEnterNotifyMask(ws)
	defer c.AddEnterNotifyMask(ws)
	tiled := c.tiledCount(ws)
	for _, h := range c.ss.Handles(ws) {
		c.updateClient(h, tiled)
	}
}

// updateOne pushes the geometry of a single client with enter-notify off.
func (c *Controller) updateOne(h stackset.Handle) {
	w := c.ss.Client(h).Win
	c.warn("select input", w, c.display.SelectInput(w, false))
	c.updateClient(h, c.tiledCount(h.WS()))
	c.warn("select input", w, c.display.SelectInput(w, true))
}

func (c *Controller) tiledCount(ws int) int {
	n := 0
	for _, h := range c.ss.Handles(ws) {
		if c.ss.Client(h).IsTiled() {
			n++
		}
	}
	return n
}

// updateClient configures one window. Clients of hidden workspaces are moved
// off-screen.
func (c *Controller) updateClient(h stackset.Handle, tiled int) {
	ss := c.ss
	cli := ss.Client(h)
	if cli == nil {
		return
	}
	ws := h.WS()
	l := ss.CurrLayout(ws)
	dec := layout.Decoration{
		Current:    ss.IsCurr(ws) && ss.IsCurrClient(h),
		Previous:   ss.IsPrevClient(h),
		Free:       cli.IsFree(),
		Urgent:     cli.Urgent,
		Fullscreen: cli.Fullscreen,
		Tiled:      tiled,
	}
	bw := l.BorderWidthFor(dec)
	r := ss.ClientRegion(h).Inset(l.BorderGapFor(dec)).Grow(-2*bw, -2*bw)
	if !ss.Visible(ws) {
		r = layout.Offscreen(r)
	}
	c.warn("configure", cli.Win, c.display.Configure(cli.Win, Geometry{Rect: r, Border: bw, Color: l.BorderColor(dec)}))
}

// relayout runs the layout pass and pushes the result for ws.
func (c *Controller) relayout(ws int) {
	c.RunLayout(ws)
	c.Update(ws)
}

// refresh relays ws out and restacks it when it is the current workspace.
func (c *Controller) refresh(ws int) error {
	c.relayout(ws)
	if c.ss.IsCurr(ws) {
		return c.Focus(ws)
	}
	return nil
}
