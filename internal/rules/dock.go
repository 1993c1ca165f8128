package rules

import (
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

// SetLayoutRegion removes the strip reserved by d from the tiling region r.
func SetLayoutRegion(r layout.Rect, d state.Docking) layout.Rect {
	switch d.Pos {
	case state.FixedUp:
		strip := int(d.Size * float64(r.Height))
		r.Y += strip
		r.Height -= strip
	case state.FixedDown:
		r.Height -= int(d.Size * float64(r.Height))
	case state.FixedLeft:
		strip := int(d.Size * float64(r.Width))
		r.X += strip
		r.Width -= strip
	case state.FixedRight:
		r.Width -= int(d.Size * float64(r.Width))
	}
	return r
}

// SetClientRegion returns the strip of the stack region a docked client
// occupies. Down and Right strips sit against the far edge. Clients without
// a dock position keep r.
func SetClientRegion(r, stack layout.Rect, d state.Docking) layout.Rect {
	switch d.Pos {
	case state.FixedUp:
		h := int(d.Size * float64(stack.Height))
		return layout.Rect{X: stack.X, Y: stack.Y, Width: stack.Width, Height: h}
	case state.FixedDown:
		h := int(d.Size * float64(stack.Height))
		return layout.Rect{X: stack.X, Y: stack.Y + stack.Height - h, Width: stack.Width, Height: h}
	case state.FixedLeft:
		w := int(d.Size * float64(stack.Width))
		return layout.Rect{X: stack.X, Y: stack.Y, Width: w, Height: stack.Height}
	case state.FixedRight:
		w := int(d.Size * float64(stack.Width))
		return layout.Rect{X: stack.X + stack.Width - w, Y: stack.Y, Width: w, Height: stack.Height}
	}
	return r
}
