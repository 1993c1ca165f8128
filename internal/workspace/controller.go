// Package workspace drives workspace switching, layout passes and the
// focus/restack order of managed clients.
package workspace

import (
	"errors"
	"fmt"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
	"github.com/hyprpal/stackwm/internal/util"
)

// Geometry is what the display applies to one client window.
type Geometry struct {
	Rect   layout.Rect
	Border int
	Color  uint32
}

// Display is the window-system surface the controller drives.
type Display interface {
	SetInputFocus(w state.Window) error
	SetActiveWindow(w state.Window) error
	ClearActiveWindow() error
	GrabButtons(w state.Window) error
	UngrabButtons(w state.Window) error
	// StackingOrder lists top-level windows from bottom to top.
	StackingOrder() ([]state.Window, error)
	// Restack applies windows from top to bottom.
	Restack(windows []state.Window) error
	Configure(w state.Window, g Geometry) error
	Kill(w state.Window) error
	SelectInput(w state.Window, enterNotify bool) error
	// SetFullscreenState publishes the fullscreen state on the window.
	SetFullscreenState(w state.Window, on bool) error
}

// FatalError reports a display failure the controller cannot recover from.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// IsFatal reports whether err wraps a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// Controller owns the StackSet and is only used from one goroutine.
type Controller struct {
	ss      *stackset.StackSet
	rules   *rules.Engine
	display Display
	logger  *util.Logger
}

// New returns a controller over ss.
func New(ss *stackset.StackSet, engine *rules.Engine, display Display, logger *util.Logger) *Controller {
	return &Controller{ss: ss, rules: engine, display: display, logger: logger}
}

// StackSet exposes the managed state for read-only queries.
func (c *Controller) StackSet() *stackset.StackSet { return c.ss }

// Rules returns the rule engine used for new windows.
func (c *Controller) Rules() *rules.Engine { return c.rules }

func (c *Controller) warn(op string, w state.Window, err error) {
	if err != nil && c.logger != nil {
		c.logger.Warnf("%s 0x%x: %v", op, uint32(w), err)
	}
}

func (c *Controller) validWS(ws int) bool {
	return ws >= 0 && ws < c.ss.Size()
}
