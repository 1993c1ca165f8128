package stackset

import "github.com/hyprpal/stackwm/internal/layout"

// LayoutIdx returns the active layout index, from the overlay set when one is
// toggled on.
func (ss *StackSet) LayoutIdx(ws int) int {
	_, idx := ss.stack(ws).activeLayouts()
	return idx
}

// NumLayouts returns the size of the active layout set.
func (ss *StackSet) NumLayouts(ws int) int {
	set, _ := ss.stack(ws).activeLayouts()
	return len(set)
}

// IsTogLayout reports whether an overlay layout is active.
func (ss *StackSet) IsTogLayout(ws int) bool {
	return ss.stack(ws).togIdx != none
}

// SetLayout selects normal layout i, wrapping around the set.
func (ss *StackSet) SetLayout(ws, i int) {
	s := ss.stack(ws)
	if len(s.layouts) == 0 {
		return
	}
	s.layoutIdx = wrap(i, len(s.layouts))
}

// SetTogLayout selects overlay layout i, wrapping around the set. An index of
// -1 turns the overlay off.
func (ss *StackSet) SetTogLayout(ws, i int) {
	s := ss.stack(ws)
	if i == none || len(s.togLayouts) == 0 {
		s.togIdx = none
		return
	}
	s.togIdx = wrap(i, len(s.togLayouts))
}

// TogLayoutIdx returns the overlay index, or -1.
func (ss *StackSet) TogLayoutIdx(ws int) int {
	return ss.stack(ws).togIdx
}

// NumTogLayouts returns the size of the overlay set.
func (ss *StackSet) NumTogLayouts(ws int) int {
	return len(ss.stack(ws).togLayouts)
}

// Layout returns layout i of the active set. Stacks without layouts get a
// floating layout.
func (ss *StackSet) Layout(ws, i int) layout.Layout {
	set, _ := ss.stack(ws).activeLayouts()
	if len(set) == 0 {
		return layout.Layout{Name: "float", Kind: layout.KindFloat}
	}
	return set[wrap(i, len(set))]
}

// CurrLayout returns the layout currently applied to ws.
func (ss *StackSet) CurrLayout(ws int) layout.Layout {
	return ss.Layout(ws, ss.LayoutIdx(ws))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
