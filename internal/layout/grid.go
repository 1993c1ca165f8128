package layout

import (
	"fmt"
	"math"
)

// GridSlotSpec describes the zero-based position of a slot within the grid.
type GridSlotSpec struct {
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// track is one column or row of a grid in screen coordinates.
type track struct {
	start, size float64
}

// GridRects divides region into a weighted grid and returns the rectangle
// assigned to each slot, in slot order. Slots that fall outside the grid or
// overlap previously placed slots get an empty rectangle.
func GridRects(region Rect, gap int, colWeights, rowWeights []float64, slots []GridSlotSpec) ([]Rect, error) {
	ncols := len(colWeights)
	if ncols == 0 {
		ncols = extent(slots, func(s GridSlotSpec) int { return s.Col + max(1, s.ColSpan) })
	}
	nrows := len(rowWeights)
	if nrows == 0 {
		nrows = extent(slots, func(s GridSlotSpec) int { return s.Row + max(1, s.RowSpan) })
	}

	cols, err := tracks(float64(region.X), float64(region.Width), float64(gap), colWeights, ncols)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	rows, err := tracks(float64(region.Y), float64(region.Height), float64(gap), rowWeights, nrows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	taken := newCells(nrows, ncols)
	rects := make([]Rect, len(slots))
	for i, s := range slots {
		if s.Row < 0 || s.Col < 0 || s.Row >= nrows || s.Col >= ncols {
			continue
		}
		rs := clampSpan(s.RowSpan, nrows-s.Row)
		cs := clampSpan(s.ColSpan, ncols-s.Col)
		if !taken.claim(s.Row, s.Col, rs, cs) {
			continue
		}
		x0, x1 := span(cols[s.Col : s.Col+cs])
		y0, y1 := span(rows[s.Row : s.Row+rs])
		rects[i] = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	}
	return rects, nil
}

// extent is the largest value of end over slots, at least 1.
func extent(slots []GridSlotSpec, end func(GridSlotSpec) int) int {
	n := 1
	for _, s := range slots {
		n = max(n, end(s))
	}
	return n
}

// tracks lays count weighted tracks over length starting at origin, leaving
// gap between neighbours. Missing weights default to 1.
func tracks(origin, length, gap float64, weights []float64, count int) ([]track, error) {
	sum := 0.0
	w := make([]float64, count)
	for i := range w {
		w[i] = 1
		if i < len(weights) {
			w[i] = weights[i]
		}
		if w[i] <= 0 {
			return nil, fmt.Errorf("weight %d must be positive", i)
		}
		sum += w[i]
	}
	avail := math.Max(0, length-gap*float64(count-1))
	out := make([]track, count)
	pos := origin
	for i := range out {
		out[i] = track{start: pos, size: avail * w[i] / sum}
		pos += out[i].size + gap
	}
	return out, nil
}

// span returns the rounded outer edges of consecutive tracks.
func span(ts []track) (int, int) {
	last := ts[len(ts)-1]
	return int(math.Round(ts[0].start)), int(math.Round(last.start + last.size))
}

func clampSpan(n, remaining int) int {
	if n <= 0 {
		n = 1
	}
	return min(n, remaining)
}

// cells tracks which grid cells are already assigned.
type cells struct {
	cols  int
	taken []bool
}

func newCells(rows, cols int) *cells {
	return &cells{cols: cols, taken: make([]bool, rows*cols)}
}

// claim marks the block if none of its cells is taken and reports success.
func (c *cells) claim(row, col, rows, cols int) bool {
	for r := row; r < row+rows; r++ {
		for k := col; k < col+cols; k++ {
			if c.taken[r*c.cols+k] {
				return false
			}
		}
	}
	for r := row; r < row+rows; r++ {
		for k := col; k < col+cols; k++ {
			c.taken[r*c.cols+k] = true
		}
	}
	return true
}
