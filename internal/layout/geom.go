package layout

// Rect is a window or region geometry in pixels.
type Rect struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Gaps are per-edge margins carved out of a region.
type Gaps struct {
	Up    int `json:"up" yaml:"up" toml:"up"`
	Down  int `json:"down" yaml:"down" toml:"down"`
	Left  int `json:"left" yaml:"left" toml:"left"`
	Right int `json:"right" yaml:"right" toml:"right"`
}

// Shrink returns r with the gaps removed. Width and height never go negative.
func (g Gaps) Shrink(r Rect) Rect {
	r.X += g.Left
	r.Y += g.Up
	r.Width -= g.Left + g.Right
	r.Height -= g.Up + g.Down
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate moves the rectangle by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Grow resizes the rectangle by dw, dh keeping at least one pixel on each axis.
func (r Rect) Grow(dw, dh int) Rect {
	r.Width += dw
	r.Height += dh
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	return r
}

// Inset shrinks the rectangle by n pixels on every edge.
func (r Rect) Inset(n int) Rect {
	return Gaps{Up: n, Down: n, Left: n, Right: n}.Shrink(r)
}

// Relative returns the part of region described by fractions {x, y, w, h}.
func Relative(region Rect, rel [4]float64) Rect {
	return Rect{
		X:      region.X + int(rel[0]*float64(region.Width)),
		Y:      region.Y + int(rel[1]*float64(region.Height)),
		Width:  int(rel[2] * float64(region.Width)),
		Height: int(rel[3] * float64(region.Height)),
	}
}

// CenterIn keeps the size of a and centers it inside region.
func CenterIn(a, region Rect) Rect {
	a.X = region.X + (region.Width-a.Width)/2
	a.Y = region.Y + (region.Height-a.Height)/2
	return a
}

// Offscreen returns a rectangle of the same size placed left of any monitor.
func Offscreen(r Rect) Rect {
	w := r.Width
	if w < 1 {
		w = 1
	}
	r.X = -2 * w
	return r
}

// ApproximatelyEqual reports whether two rects are almost equal.
func ApproximatelyEqual(a, b Rect, tolerance int) bool {
	return abs(a.X-b.X) <= tolerance && abs(a.Y-b.Y) <= tolerance &&
		abs(a.Width-b.Width) <= tolerance && abs(a.Height-b.Height) <= tolerance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
