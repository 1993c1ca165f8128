package layout

import (
	"fmt"
	"strings"
)

// Kind selects the arrangement used to place tiled clients.
type Kind int

const (
	KindTile Kind = iota
	KindMirror
	KindGrid
	KindMonocle
	KindFloat
)

var kindNames = map[Kind]string{
	KindTile:    "tile",
	KindMirror:  "mirror",
	KindGrid:    "grid",
	KindMonocle: "monocle",
	KindFloat:   "float",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a configuration name into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return KindTile, fmt.Errorf("unknown layout %q", s)
}

// BorderStyle decides how borders are drawn for clients under a layout.
type BorderStyle int

const (
	// BorderDefault draws the configured border on every client.
	BorderDefault BorderStyle = iota
	// BorderNone never draws borders.
	BorderNone
	// BorderSmart hides the border when only one tiled client is shown.
	BorderSmart
)

// ParseBorderStyle converts a configuration name into a BorderStyle.
func ParseBorderStyle(s string) (BorderStyle, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return BorderDefault, nil
	case "none":
		return BorderNone, nil
	case "smart":
		return BorderSmart, nil
	default:
		return BorderDefault, fmt.Errorf("unknown border style %q", s)
	}
}

// Colors are the border pixels for each client state.
type Colors struct {
	Normal   uint32
	Current  uint32
	Previous uint32
	Free     uint32
	Urgent   uint32
}

// Decoration is the client state the styling functions are keyed on.
type Decoration struct {
	Current    bool
	Previous   bool
	Free       bool
	Urgent     bool
	Fullscreen bool
	Tiled      int
}

// Layout is one configured arrangement plus its styling. Layouts are built
// once from configuration and never mutated afterwards.
type Layout struct {
	Name        string
	Kind        Kind
	Border      BorderStyle
	BorderWidth int
	BorderGap   int
	Colors      Colors
	Region      [4]float64
	Mod         uint16
	FollowMouse bool
	Settings    []float64
}

// FullRegion is the relative region covering the whole stack region.
var FullRegion = [4]float64{0, 0, 1, 1}

// BorderColor returns the border pixel for a client in state d.
func (l Layout) BorderColor(d Decoration) uint32 {
	switch {
	case d.Urgent:
		return l.Colors.Urgent
	case d.Current:
		return l.Colors.Current
	case d.Free:
		return l.Colors.Free
	case d.Previous:
		return l.Colors.Previous
	default:
		return l.Colors.Normal
	}
}

// BorderWidthFor returns the border width for a client in state d.
func (l Layout) BorderWidthFor(d Decoration) int {
	if d.Fullscreen {
		return 0
	}
	switch l.Border {
	case BorderNone:
		return 0
	case BorderSmart:
		if !d.Free && d.Tiled <= 1 {
			return 0
		}
	}
	return l.BorderWidth
}

// BorderGapFor returns the gap kept around a client in state d.
func (l Layout) BorderGapFor(d Decoration) int {
	if d.Fullscreen || d.Free {
		return 0
	}
	return l.BorderGap
}

// Arrange computes rectangles for n tiled clients inside region. A nil result
// means the layout leaves client geometry untouched.
func (l Layout) Arrange(region Rect, n int) []Rect {
	if n <= 0 {
		return nil
	}
	rel := l.Region
	if rel == ([4]float64{}) {
		rel = FullRegion
	}
	region = Relative(region, rel)
	switch l.Kind {
	case KindTile:
		return tile(region, n, l.setting(0, 0.5), int(l.setting(1, 1)), false)
	case KindMirror:
		return tile(region, n, l.setting(0, 0.5), int(l.setting(1, 1)), true)
	case KindGrid:
		return grid(region, n)
	case KindMonocle:
		rects := make([]Rect, n)
		for i := range rects {
			rects[i] = region
		}
		return rects
	default:
		return nil
	}
}

func (l Layout) setting(i int, def float64) float64 {
	if i < len(l.Settings) && l.Settings[i] > 0 {
		return l.Settings[i]
	}
	return def
}
