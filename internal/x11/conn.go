package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	xheads "github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/util"
)

// ErrAnotherWM is returned by Dial when the root window is already redirected.
var ErrAnotherWM = errors.New("another window manager is running")

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskStructureNotify

var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	fullscreenAtom,
	"_NET_SUPPORTING_WM_CHECK",
}

// Conn is the X connection of a running window manager. Its methods are safe
// to call from the engine goroutine while the event reader runs.
type Conn struct {
	X       *xgbutil.XUtil
	root    xproto.Window
	buttons []uint8
	logger  *util.Logger
	check   *xwindow.Window
}

// Dial connects to the display named by $DISPLAY and takes the window manager
// role, advertising name through EWMH. buttons lists the pointer buttons
// grabbed for click-to-focus.
func Dial(name string, buttons []uint8, logger *util.Logger) (*Conn, error) {
	X, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X: %w", err)
	}
	c := &Conn{X: X, root: X.RootWin(), buttons: buttons, logger: logger}
	err = xproto.ChangeWindowAttributesChecked(X.Conn(), c.root, xproto.CwEventMask,
		[]uint32{rootEventMask}).Check()
	if err != nil {
		X.Conn().Close()
		if _, ok := err.(xproto.AccessError); ok {
			return nil, ErrAnotherWM
		}
		return nil, fmt.Errorf("select root events: %w", err)
	}
	if err := c.announce(name); err != nil {
		logger.Warnf("EWMH setup: %v", err)
	}
	return c, nil
}

// announce publishes the EWMH supporting window and supported atoms.
func (c *Conn) announce(name string) error {
	win, err := xwindow.Generate(c.X)
	if err != nil {
		return err
	}
	if err := win.CreateChecked(c.root, -1, -1, 1, 1, 0); err != nil {
		return err
	}
	c.check = win
	if err := ewmh.SupportingWmCheckSet(c.X, c.root, win.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.X, win.Id, win.Id); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.X, win.Id, name); err != nil {
		return err
	}
	return ewmh.SupportedSet(c.X, supportedAtoms)
}

// Close releases the connection.
func (c *Conn) Close() {
	if c.check != nil {
		c.check.Destroy()
	}
	c.X.Conn().Close()
}

// Monitors returns the physical heads, or the root window when Xinerama is
// unavailable.
func (c *Conn) Monitors() []layout.Rect {
	screen := c.X.Screen()
	whole := []layout.Rect{{Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)}}
	if err := xinerama.Init(c.X.Conn()); err != nil {
		c.logger.Debugf("xinerama unavailable: %v", err)
		return whole
	}
	heads, err := xheads.PhysicalHeads(c.X)
	if err != nil || len(heads) == 0 {
		return whole
	}
	return headsToRects(heads)
}

func headsToRects(heads xheads.Heads) []layout.Rect {
	out := make([]layout.Rect, 0, len(heads))
	for _, h := range heads {
		out = append(out, layout.Rect{X: h.X(), Y: h.Y(), Width: h.Width(), Height: h.Height()})
	}
	return out
}
