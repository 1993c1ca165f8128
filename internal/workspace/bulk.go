package workspace

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
)

// Tile returns every client of ws to the tiling layout.
func (c *Controller) Tile(ws int) error {
	for _, h := range c.ss.Handles(ws) {
		c.setTiled(h)
	}
	return c.refresh(ws)
}

// Free floats every client of ws using placement p.
func (c *Controller) Free(ws int, p layout.Placement) error {
	for _, h := range c.ss.Handles(ws) {
		c.setFree(h, p)
	}
	return c.refresh(ws)
}

// Minimize moves every client of ws into its minimized pool.
func (c *Controller) Minimize(ws int) error {
	for _, h := range c.ss.Handles(ws) {
		c.minimize(h)
	}
	return c.refresh(ws)
}

// RestoreLastMinimized puts the most recently minimized client of ws back at
// the front of the stack and focuses it.
func (c *Controller) RestoreLastMinimized(ws int) error {
	if c.ss.MinimizedNum(ws) <= 0 {
		return nil
	}
	cli := c.ss.PopMinimized(ws)
	if cli == nil {
		return nil
	}
	h := c.ss.AddStart(cli)
	c.ss.SetCurrClient(h)
	c.relayout(h.WS())
	return c.Focus(h.WS())
}

func (c *Controller) setTiled(h stackset.Handle) {
	c.ss.Client(h).Free = layout.PlacementTiled
}

// setFree floats the client behind h. Its floating geometry starts from where
// the client is shown now.
func (c *Controller) setFree(h stackset.Handle, p layout.Placement) {
	if !p.Free() {
		p = layout.PlacementDefault
	}
	cli := c.ss.Client(h)
	cli.Free = p
	cli.FloatRegion = p.Apply(c.ss.ClientRegion(h), c.ss.Region(h.WS()))
}

// minimize hides the client behind h and parks it in its minimized pool.
func (c *Controller) minimize(h stackset.Handle) {
	region := c.ss.ClientRegion(h)
	cli := c.ss.Remove(h)
	if cli == nil {
		return
	}
	c.warn("select input", cli.Win, c.display.SelectInput(cli.Win, false))
	c.warn("configure", cli.Win, c.display.Configure(cli.Win, Geometry{Rect: layout.Offscreen(region)}))
	c.ss.PushMinimized(cli)
}
