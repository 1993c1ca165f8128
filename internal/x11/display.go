package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
	"github.com/hyprpal/stackwm/internal/workspace"
)

const clientEventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify

var _ workspace.Display = (*Conn)(nil)

func (c *Conn) SetInputFocus(w state.Window) error {
	return xproto.SetInputFocusChecked(c.X.Conn(), xproto.InputFocusPointerRoot,
		xproto.Window(w), xproto.TimeCurrentTime).Check()
}

func (c *Conn) SetActiveWindow(w state.Window) error {
	return ewmh.ActiveWindowSet(c.X, xproto.Window(w))
}

func (c *Conn) ClearActiveWindow() error {
	atom, err := xprop.Atm(c.X, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}
	return xproto.DeletePropertyChecked(c.X.Conn(), c.root, atom).Check()
}

// GrabButtons grabs the click-to-focus buttons synchronously so the press
// can be replayed to the client.
func (c *Conn) GrabButtons(w state.Window) error {
	for _, b := range c.buttons {
		err := xproto.GrabButtonChecked(c.X.Conn(), false, xproto.Window(w),
			xproto.EventMaskButtonPress, xproto.GrabModeSync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone, b, xproto.ModMaskAny).Check()
		if err != nil {
			return fmt.Errorf("grab button %d: %w", b, err)
		}
	}
	return nil
}

func (c *Conn) UngrabButtons(w state.Window) error {
	return xproto.UngrabButtonChecked(c.X.Conn(), xproto.ButtonIndexAny,
		xproto.Window(w), xproto.ModMaskAny).Check()
}

// StackingOrder lists the children of the root window, bottom first.
func (c *Conn) StackingOrder() ([]state.Window, error) {
	tree, err := xproto.QueryTree(c.X.Conn(), c.root).Reply()
	if err != nil {
		return nil, err
	}
	out := make([]state.Window, len(tree.Children))
	for i, w := range tree.Children {
		out[i] = state.Window(w)
	}
	return out, nil
}

// Restack applies windows, topmost first.
func (c *Conn) Restack(windows []state.Window) error {
	for i, w := range windows {
		mask, values := stackValues(windows, i)
		if err := xproto.ConfigureWindowChecked(c.X.Conn(), xproto.Window(w), mask, values).Check(); err != nil {
			return fmt.Errorf("restack 0x%x: %w", uint32(w), err)
		}
	}
	return nil
}

// stackValues returns the configure request placing windows[i] directly
// below its predecessor, or on top for the first window.
func stackValues(windows []state.Window, i int) (uint16, []uint32) {
	if i == 0 {
		return xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}
	}
	return xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode,
		[]uint32{uint32(windows[i-1]), xproto.StackModeBelow}
}

func (c *Conn) Configure(w state.Window, g workspace.Geometry) error {
	mask, values := geometryValues(g.Rect, g.Border)
	if err := xproto.ConfigureWindowChecked(c.X.Conn(), xproto.Window(w), mask, values).Check(); err != nil {
		return err
	}
	return xproto.ChangeWindowAttributesChecked(c.X.Conn(), xproto.Window(w),
		xproto.CwBorderPixel, []uint32{g.Color}).Check()
}

// ConfigureUnmanaged grants a configure request of a window that is not
// managed.
func (c *Conn) ConfigureUnmanaged(w state.Window, r layout.Rect) error {
	mask, values := geometryValues(r, -1)
	return xproto.ConfigureWindowChecked(c.X.Conn(), xproto.Window(w), mask, values).Check()
}

// geometryValues builds a configure request. A negative border leaves the
// border width untouched.
func geometryValues(r layout.Rect, border int) (uint16, []uint32) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{
		uint32(int32(r.X)),
		uint32(int32(r.Y)),
		uint32(max(r.Width, 1)),
		uint32(max(r.Height, 1)),
	}
	if border >= 0 {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(border))
	}
	return mask, values
}

// Kill asks w to close through WM_DELETE_WINDOW and falls back to killing
// the client.
func (c *Conn) Kill(w state.Window) error {
	win := xproto.Window(w)
	protocols, _ := icccm.WmProtocolsGet(c.X, win)
	if !hasAtom(protocols, "WM_DELETE_WINDOW") {
		return xproto.KillClientChecked(c.X.Conn(), uint32(win)).Check()
	}
	wmProtocols, err := xprop.Atm(c.X, "WM_PROTOCOLS")
	if err != nil {
		return err
	}
	wmDelete, err := xprop.Atm(c.X, "WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	ev := deleteMessage(win, wmProtocols, wmDelete)
	return xproto.SendEventChecked(c.X.Conn(), false, win, xproto.EventMaskNoEvent,
		string(ev.Bytes())).Check()
}

// deleteMessage builds the WM_PROTOCOLS client message asking win to close.
func deleteMessage(win xproto.Window, protocols, del xproto.Atom) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(del),
			uint32(xproto.TimeCurrentTime),
			0,
			0,
			0,
		}),
	}
}

func hasAtom(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// SetFullscreenState adds or removes _NET_WM_STATE_FULLSCREEN on w, keeping
// the other states.
func (c *Conn) SetFullscreenState(w state.Window, on bool) error {
	win := xproto.Window(w)
	states, _ := ewmh.WmStateGet(c.X, win)
	next := make([]string, 0, len(states)+1)
	for _, s := range states {
		if s != fullscreenAtom {
			next = append(next, s)
		}
	}
	if on {
		next = append(next, fullscreenAtom)
	}
	return ewmh.WmStateSet(c.X, win, next)
}

func (c *Conn) SelectInput(w state.Window, enter bool) error {
	mask := uint32(clientEventMask)
	if enter {
		mask |= xproto.EventMaskEnterWindow
	}
	return xproto.ChangeWindowAttributesChecked(c.X.Conn(), xproto.Window(w),
		xproto.CwEventMask, []uint32{mask}).Check()
}
