package state

import (
	"fmt"
	"strings"

	"github.com/hyprpal/stackwm/internal/layout"
)

// Window identifies a window on the display server.
type Window uint32

// FixedPosition is the screen edge a docked client is pinned to.
type FixedPosition int

const (
	FixedNone FixedPosition = iota
	FixedUp
	FixedDown
	FixedLeft
	FixedRight
)

var fixedNames = map[FixedPosition]string{
	FixedNone:  "none",
	FixedUp:    "up",
	FixedDown:  "down",
	FixedLeft:  "left",
	FixedRight: "right",
}

func (p FixedPosition) String() string {
	if name, ok := fixedNames[p]; ok {
		return name
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p FixedPosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *FixedPosition) UnmarshalText(b []byte) error {
	parsed, err := ParseFixedPosition(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseFixedPosition converts a configuration name into a FixedPosition.
func ParseFixedPosition(s string) (FixedPosition, error) {
	if s == "" {
		return FixedNone, nil
	}
	for p, name := range fixedNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return FixedNone, fmt.Errorf("unknown dock position %q", s)
}

// Docking reserves an edge strip of the workspace region for a client.
type Docking struct {
	Pos  FixedPosition `json:"pos"`
	Size float64       `json:"size"`
}

// Docked reports whether the descriptor pins the client to an edge.
func (d Docking) Docked() bool {
	return d.Pos != FixedNone
}

// Client describes one managed window.
type Client struct {
	Win         Window           `json:"win"`
	Class       string           `json:"class"`
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	WS          int              `json:"ws"`
	FloatRegion layout.Rect      `json:"floatRegion"`
	Dock        Docking          `json:"dock"`
	Free        layout.Placement `json:"free"`
	Fullscreen  bool             `json:"fullscreen"`
	NSP         bool             `json:"nsp"`
	Urgent      bool             `json:"urgent"`
}

// IsFree reports whether the client floats outside the tiling layout.
func (c *Client) IsFree() bool {
	return c.Free.Free()
}

// IsTiled reports whether the active layout arranges the client.
func (c *Client) IsTiled() bool {
	return !c.IsFree() && !c.Fullscreen && !c.Dock.Docked()
}

// AboveTiled reports whether the client is stacked above tiled clients.
func (c *Client) AboveTiled() bool {
	return c.IsFree() || c.Fullscreen
}

func (c *Client) String() string {
	return fmt.Sprintf("0x%x(%s/%s)", uint32(c.Win), c.Class, c.Name)
}

// Attributes are the window-system attributes read when a window is mapped.
type Attributes struct {
	Geometry         layout.Rect
	OverrideRedirect bool
}

// SizeHints mirrors the WM_NORMAL_HINTS fields used for classification.
// Zero means the hint is absent.
type SizeHints struct {
	MinWidth, MinHeight   int
	MaxWidth, MaxHeight   int
	BaseWidth, BaseHeight int
}

// Fixed reports whether the hints pin the window to one size.
// Base size stands in for a missing minimum size.
func (h SizeHints) Fixed() bool {
	minW, minH := h.MinWidth, h.MinHeight
	if minW == 0 && minH == 0 {
		minW, minH = h.BaseWidth, h.BaseHeight
	}
	return h.MaxWidth != 0 && h.MaxHeight != 0 && minW != 0 && minH != 0 &&
		h.MaxWidth == minW && h.MaxHeight == minH
}
