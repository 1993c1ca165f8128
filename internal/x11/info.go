package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/state"
)

var _ rules.WindowInfo = (*Conn)(nil)

func (c *Conn) SizeHints(w state.Window) (state.SizeHints, error) {
	nh, err := icccm.WmNormalHintsGet(c.X, xproto.Window(w))
	if err != nil {
		return state.SizeHints{}, err
	}
	return sizeHints(nh), nil
}

// sizeHints keeps only the fields whose flag is set.
func sizeHints(nh *icccm.NormalHints) state.SizeHints {
	var h state.SizeHints
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinWidth, h.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxWidth, h.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseWidth, h.BaseHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	return h
}

func (c *Conn) ClassAndName(w state.Window) (string, string, error) {
	cls, err := icccm.WmClassGet(c.X, xproto.Window(w))
	if err != nil {
		return "", "", err
	}
	return cls.Class, cls.Instance, nil
}

// Title prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Conn) Title(w state.Window) (string, error) {
	if name, err := ewmh.WmNameGet(c.X, xproto.Window(w)); err == nil && name != "" {
		return name, nil
	}
	return icccm.WmNameGet(c.X, xproto.Window(w))
}

// urgent reports the urgency hint of w.
func (c *Conn) urgent(w xproto.Window) bool {
	hints, err := icccm.WmHintsGet(c.X, w)
	if err != nil {
		return false
	}
	return hints.Flags&icccm.HintUrgency != 0
}

// attributes reads the geometry and override-redirect flag of w.
func (c *Conn) attributes(w xproto.Window) (state.Attributes, error) {
	attrs, err := xproto.GetWindowAttributes(c.X.Conn(), w).Reply()
	if err != nil {
		return state.Attributes{}, err
	}
	geom, err := xproto.GetGeometry(c.X.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return state.Attributes{}, err
	}
	return state.Attributes{
		Geometry: layout.Rect{
			X:      int(geom.X),
			Y:      int(geom.Y),
			Width:  int(geom.Width),
			Height: int(geom.Height),
		},
		OverrideRedirect: attrs.OverrideRedirect,
	}, nil
}
