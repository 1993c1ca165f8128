package layout

import "math"

// tile splits region into a master area and a stack area. With mirror the
// master area sits on top instead of the left.
func tile(region Rect, n int, ratio float64, masters int, mirror bool) []Rect {
	if masters < 1 {
		masters = 1
	}
	if n <= masters {
		return split(region, n, mirror)
	}
	master, stack := region, region
	if mirror {
		master.Height = int(float64(region.Height) * ratio)
		stack.Y += master.Height
		stack.Height -= master.Height
	} else {
		master.Width = int(float64(region.Width) * ratio)
		stack.X += master.Width
		stack.Width -= master.Width
	}
	rects := split(master, masters, mirror)
	return append(rects, split(stack, n-masters, mirror)...)
}

// split divides region into n equal slices: columns when horizontal is set,
// rows otherwise. The last slice absorbs rounding leftovers.
func split(region Rect, n int, horizontal bool) []Rect {
	rects := make([]Rect, n)
	for i := 0; i < n; i++ {
		r := region
		if horizontal {
			r.Width = region.Width / n
			r.X = region.X + i*r.Width
			if i == n-1 {
				r.Width = region.X + region.Width - r.X
			}
		} else {
			r.Height = region.Height / n
			r.Y = region.Y + i*r.Height
			if i == n-1 {
				r.Height = region.Y + region.Height - r.Y
			}
		}
		rects[i] = r
	}
	return rects
}

func grid(region Rect, n int) []Rect {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	slots := make([]GridSlotSpec, n)
	for i := range slots {
		slots[i] = GridSlotSpec{Row: i / cols, Col: i % cols, RowSpan: 1, ColSpan: 1}
	}
	// The last client stretches over the unused cells of an incomplete row.
	if rem := n % cols; rem != 0 {
		slots[n-1].ColSpan = cols - rem + 1
	}
	rects, err := GridRects(region, 0, make([]float64, 0, cols), make([]float64, 0, rows), slots)
	if err != nil {
		return split(region, n, true)
	}
	return rects
}
