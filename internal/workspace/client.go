package workspace

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
)

// Selector picks the target of a client action relative to a reference client.
type Selector int

const (
	SelectSelf Selector = iota
	SelectNext
	SelectPrev
	SelectHead
	SelectLast
	SelectPrevSelected
)

var selectorNames = map[string]Selector{
	"self":         SelectSelf,
	"next":         SelectNext,
	"prev":         SelectPrev,
	"head":         SelectHead,
	"last":         SelectLast,
	"prevSelected": SelectPrevSelected,
}

// ParseSelector converts a selector name; unknown names select the reference.
func ParseSelector(s string) Selector {
	if sel, ok := selectorNames[s]; ok {
		return sel
	}
	return SelectSelf
}

// Resolve returns the client sel picks relative to ref. Next and Prev wrap
// around the stack.
func (c *Controller) Resolve(ref stackset.Handle, sel Selector) stackset.Handle {
	ss := c.ss
	if !ss.Valid(ref) {
		return stackset.Handle{}
	}
	switch sel {
	case SelectNext:
		if h := ss.Next(ref); !h.IsZero() {
			return h
		}
		return ss.HeadClient(ref.WS())
	case SelectPrev:
		if h := ss.Prev(ref); !h.IsZero() {
			return h
		}
		return ss.LastClient(ref.WS())
	case SelectHead:
		return ss.HeadClient(ref.WS())
	case SelectLast:
		return ss.LastClient(ref.WS())
	case SelectPrevSelected:
		return ss.PrevClient(ref.WS())
	default:
		return ref
	}
}

// process runs fn on the resolved target. A missing target is not an error.
func (c *Controller) process(ref stackset.Handle, sel Selector, fn func(stackset.Handle) error) error {
	h := c.Resolve(ref, sel)
	if !c.ss.Valid(h) {
		return nil
	}
	return fn(h)
}

// ClientFocus selects the target and restacks its workspace.
func (c *Controller) ClientFocus(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		c.ss.SetCurrClient(h)
		return c.Focus(h.WS())
	})
}

// ClientSwap exchanges the reference client with the target and keeps focus
// on the moved reference client.
func (c *Controller) ClientSwap(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		if !c.ss.Swap(ref, h) {
			return nil
		}
		c.relayout(h.WS())
		return c.ClientFocus(ref, sel)
	})
}

// ClientSend moves the target to the front of workspace ws.
func (c *Controller) ClientSend(ref stackset.Handle, sel Selector, ws int) error {
	if !c.validWS(ws) && !c.ss.IsNSP(ws) {
		return nil
	}
	return c.process(ref, sel, func(h stackset.Handle) error {
		return c.send(h, ws)
	})
}

func (c *Controller) send(h stackset.Handle, ws int) error {
	ss := c.ss
	old, curr := h.WS(), ss.Curr()
	if old == ws {
		return nil
	}
	cli := ss.Client(h)
	// Default geometry comes from another monitor size, so center it instead.
	if cli.Free == layout.PlacementDefault {
		cli.Free = layout.PlacementCenter
	}
	ss.Remove(h)
	cli.WS = ws
	added := ss.AddStart(cli)
	if cli.IsFree() {
		cli.FloatRegion = cli.Free.Apply(cli.FloatRegion, ss.Region(added.WS()))
	}

	c.relayout(curr)
	if old != curr {
		c.relayout(old)
	}
	c.relayout(ws)
	return c.Focus(curr)
}

// ClientKill asks the target to close.
func (c *Controller) ClientKill(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		cli := c.ss.Client(h)
		c.warn("kill", cli.Win, c.display.Kill(cli.Win))
		return nil
	})
}

// ClientMinimize moves the target into its minimized pool.
func (c *Controller) ClientMinimize(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		ws := h.WS()
		c.minimize(h)
		return c.refresh(ws)
	})
}

// ClientTile returns the target to the tiling layout.
func (c *Controller) ClientTile(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		c.setTiled(h)
		return c.refresh(h.WS())
	})
}

// ClientFree floats the target using placement p.
func (c *Controller) ClientFree(ref stackset.Handle, sel Selector, p layout.Placement) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		c.setFree(h, p)
		return c.refresh(h.WS())
	})
}

// ClientToggleFree floats a tiled target with placement p, or tiles a free one.
func (c *Controller) ClientToggleFree(ref stackset.Handle, sel Selector, p layout.Placement) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		if c.ss.Client(h).IsFree() {
			c.setTiled(h)
		} else {
			c.setFree(h, p)
		}
		return c.refresh(h.WS())
	})
}

// ClientNormal clears the free and fullscreen state of the target.
func (c *Controller) ClientNormal(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		c.ss.Client(h).Free = layout.PlacementTiled
		c.setFullscreen(h, false)
		return c.refresh(h.WS())
	})
}

// ClientFullscreen makes the target cover its monitor.
func (c *Controller) ClientFullscreen(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		c.setFullscreen(h, true)
		return c.refresh(h.WS())
	})
}

// ClientToggleFullscreen flips the fullscreen state of the target.
func (c *Controller) ClientToggleFullscreen(ref stackset.Handle, sel Selector) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		c.setFullscreen(h, !c.ss.Client(h).Fullscreen)
		return c.refresh(h.WS())
	})
}

// ClientMove shifts the floating geometry of the target by dx, dy. Tiled
// targets start floating where they are shown.
func (c *Controller) ClientMove(ref stackset.Handle, sel Selector, dx, dy int) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		cli := c.ss.Client(h)
		if !cli.IsFree() {
			c.setFree(h, layout.PlacementDefault)
		}
		cli.FloatRegion = cli.FloatRegion.Translate(dx, dy)
		return c.refresh(h.WS())
	})
}

// ClientResize grows the floating geometry of the target by dw, dh. Tiled
// targets start floating where they are shown.
func (c *Controller) ClientResize(ref stackset.Handle, sel Selector, dw, dh int) error {
	return c.process(ref, sel, func(h stackset.Handle) error {
		cli := c.ss.Client(h)
		if !cli.IsFree() {
			c.setFree(h, layout.PlacementDefault)
		}
		cli.FloatRegion = cli.FloatRegion.Grow(dw, dh)
		return c.refresh(h.WS())
	})
}
