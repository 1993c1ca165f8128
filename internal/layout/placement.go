package layout

import (
	"fmt"
	"strings"
)

// Placement selects how a free (floating) client is positioned. The zero value
// means the client is tiled and has no free placement at all.
type Placement int

const (
	PlacementTiled Placement = iota
	PlacementDefault
	PlacementCenter
	PlacementBigCenter
	PlacementScratchpad
)

var placementNames = map[Placement]string{
	PlacementTiled:      "tiled",
	PlacementDefault:    "default",
	PlacementCenter:     "center",
	PlacementBigCenter:  "bigCenter",
	PlacementScratchpad: "scratchpad",
}

func (p Placement) String() string {
	if name, ok := placementNames[p]; ok {
		return name
	}
	return fmt.Sprintf("placement(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(b []byte) error {
	parsed, err := ParsePlacement(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePlacement converts a configuration name into a Placement.
func ParsePlacement(s string) (Placement, error) {
	if s == "" {
		return PlacementTiled, nil
	}
	for p, name := range placementNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return PlacementTiled, fmt.Errorf("unknown placement %q", s)
}

// Free reports whether the placement positions the client outside the tiling layout.
func (p Placement) Free() bool {
	return p != PlacementTiled
}

// Apply computes the floating rectangle for a client currently at a inside region.
func (p Placement) Apply(a, region Rect) Rect {
	switch p {
	case PlacementCenter:
		return CenterIn(a, region)
	case PlacementBigCenter:
		big := Relative(region, [4]float64{0.05, 0.05, 0.9, 0.9})
		return CenterIn(big, region)
	case PlacementScratchpad:
		return Relative(region, [4]float64{0, 0, 1, 0.75})
	default:
		return a
	}
}
