package x11

import (
	"context"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/hyprpal/stackwm/internal/engine"
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
	"github.com/hyprpal/stackwm/internal/util"
)

// _NET_WM_STATE actions.
const (
	stateRemove = 0
	stateAdd    = 1
	stateToggle = 2
)

const fullscreenAtom = "_NET_WM_STATE_FULLSCREEN"

var _ engine.SubscribeFunc = (*Conn)(nil).Subscribe

// Subscribe adopts the windows already on screen and then streams decoded
// events until the connection closes or ctx is done.
func (c *Conn) Subscribe(ctx context.Context, logger *util.Logger) (<-chan engine.Event, error) {
	existing, err := c.viewable()
	if err != nil {
		return nil, err
	}
	events := make(chan engine.Event)
	go func() {
		defer close(events)
		r := reader{conn: c, logger: logger}
		emit := func(ev engine.Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}
		for _, ev := range existing {
			if !emit(ev) {
				return
			}
		}
		for {
			xev, xerr := c.X.Conn().WaitForEvent()
			if xev == nil && xerr == nil {
				logger.Warnf("X connection closed")
				return
			}
			if xerr != nil {
				logger.Debugf("X error: %v", xerr)
				continue
			}
			for _, ev := range r.decode(xev) {
				if !emit(ev) {
					return
				}
			}
		}
	}()
	return events, nil
}

// viewable returns map events for the mapped top-level windows.
func (c *Conn) viewable() ([]engine.Event, error) {
	tree, err := xproto.QueryTree(c.X.Conn(), c.root).Reply()
	if err != nil {
		return nil, err
	}
	var out []engine.Event
	for _, w := range tree.Children {
		if c.check != nil && w == c.check.Id {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(c.X.Conn(), w).Reply()
		if err != nil || attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		a, err := c.attributes(w)
		if err != nil {
			continue
		}
		out = append(out, engine.Event{Kind: engine.EventMap, Window: state.Window(w), Attrs: a})
	}
	return out, nil
}

// reader decodes events on the reader goroutine. It only issues requests
// that do not touch managed state.
type reader struct {
	conn   *Conn
	logger *util.Logger
}

func (r *reader) decode(xev xgb.Event) []engine.Event {
	c := r.conn
	switch ev := xev.(type) {
	case xproto.MapRequestEvent:
		if err := xproto.MapWindowChecked(c.X.Conn(), ev.Window).Check(); err != nil {
			r.logger.Debugf("map 0x%x: %v", uint32(ev.Window), err)
			return nil
		}
		attrs, err := c.attributes(ev.Window)
		if err != nil {
			r.logger.Debugf("attributes 0x%x: %v", uint32(ev.Window), err)
			return nil
		}
		return one(engine.Event{Kind: engine.EventMap, Window: state.Window(ev.Window), Attrs: attrs})
	case xproto.DestroyNotifyEvent:
		return one(engine.Event{Kind: engine.EventDestroy, Window: state.Window(ev.Window)})
	case xproto.UnmapNotifyEvent:
		return one(engine.Event{Kind: engine.EventDestroy, Window: state.Window(ev.Window)})
	case xproto.EnterNotifyEvent:
		return one(engine.Event{Kind: engine.EventEnter, Window: state.Window(ev.Event)})
	case xproto.ButtonPressEvent:
		xproto.AllowEvents(c.X.Conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime)
		return one(engine.Event{Kind: engine.EventActivate, Window: state.Window(ev.Event)})
	case xproto.ConfigureRequestEvent:
		return one(engine.Event{
			Kind:     engine.EventConfigure,
			Window:   state.Window(ev.Window),
			Geometry: layout.Rect{X: int(ev.X), Y: int(ev.Y), Width: int(ev.Width), Height: int(ev.Height)},
		})
	case xproto.PropertyNotifyEvent:
		return r.property(ev)
	case xproto.ClientMessageEvent:
		return r.clientMessage(ev)
	}
	return nil
}

func (r *reader) property(ev xproto.PropertyNotifyEvent) []engine.Event {
	c := r.conn
	name, err := xprop.AtomName(c.X, ev.Atom)
	if err != nil {
		return nil
	}
	w := state.Window(ev.Window)
	switch name {
	case "_NET_WM_NAME", "WM_NAME":
		title, err := c.Title(w)
		if err != nil {
			return nil
		}
		return one(engine.Event{Kind: engine.EventTitle, Window: w, Title: title})
	case "WM_HINTS":
		return one(engine.Event{Kind: engine.EventUrgent, Window: w, Flag: c.urgent(ev.Window)})
	}
	return nil
}

func (r *reader) clientMessage(ev xproto.ClientMessageEvent) []engine.Event {
	c := r.conn
	name, err := xprop.AtomName(c.X, ev.Type)
	if err != nil {
		return nil
	}
	w := state.Window(ev.Window)
	switch name {
	case "_NET_ACTIVE_WINDOW":
		return one(engine.Event{Kind: engine.EventActivate, Window: w})
	case "_NET_WM_STATE":
		data := ev.Data.Data32
		if len(data) < 3 {
			return nil
		}
		for _, atom := range data[1:3] {
			prop, err := xprop.AtomName(c.X, xproto.Atom(atom))
			if err != nil || prop != fullscreenAtom {
				continue
			}
			on, toggle, ok := fullscreenRequest(data[0])
			if !ok {
				return nil
			}
			return one(engine.Event{Kind: engine.EventFullscreen, Window: w, Flag: on, Toggle: toggle})
		}
	}
	return nil
}

// fullscreenRequest decodes a _NET_WM_STATE action. A toggle is resolved
// against the managed state by the engine.
func fullscreenRequest(action uint32) (on, toggle, ok bool) {
	switch action {
	case stateRemove:
		return false, false, true
	case stateAdd:
		return true, false, true
	case stateToggle:
		return false, true, true
	}
	return false, false, false
}

func one(ev engine.Event) []engine.Event { return []engine.Event{ev} }
