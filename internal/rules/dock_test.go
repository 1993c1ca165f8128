package rules

import (
	"testing"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

func TestDockLeft(t *testing.T) {
	base := layout.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	d := state.Docking{Pos: state.FixedLeft, Size: 0.3}
	if got := SetLayoutRegion(base, d); got != (layout.Rect{X: 30, Y: 0, Width: 70, Height: 50}) {
		t.Fatalf("SetLayoutRegion() = %+v", got)
	}
	if got := SetClientRegion(layout.Rect{}, base, d); got != (layout.Rect{X: 0, Y: 0, Width: 30, Height: 50}) {
		t.Fatalf("SetClientRegion() = %+v", got)
	}
}

func TestDockEdges(t *testing.T) {
	stack := layout.Rect{X: 10, Y: 20, Width: 200, Height: 100}
	tests := []struct {
		pos        state.FixedPosition
		wantLayout layout.Rect
		wantClient layout.Rect
	}{
		{state.FixedUp, layout.Rect{X: 10, Y: 45, Width: 200, Height: 75}, layout.Rect{X: 10, Y: 20, Width: 200, Height: 25}},
		{state.FixedDown, layout.Rect{X: 10, Y: 20, Width: 200, Height: 75}, layout.Rect{X: 10, Y: 95, Width: 200, Height: 25}},
		{state.FixedRight, layout.Rect{X: 10, Y: 20, Width: 150, Height: 100}, layout.Rect{X: 160, Y: 20, Width: 50, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			d := state.Docking{Pos: tt.pos, Size: 0.25}
			if got := SetLayoutRegion(stack, d); got != tt.wantLayout {
				t.Fatalf("SetLayoutRegion() = %+v, want %+v", got, tt.wantLayout)
			}
			if got := SetClientRegion(layout.Rect{}, stack, d); got != tt.wantClient {
				t.Fatalf("SetClientRegion() = %+v, want %+v", got, tt.wantClient)
			}
		})
	}
}

func TestDockNoneLeavesRegions(t *testing.T) {
	r := layout.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	if SetLayoutRegion(r, state.Docking{}) != r || SetClientRegion(r, layout.Rect{Width: 99}, state.Docking{}) != r {
		t.Fatalf("expected no-op without dock position")
	}
}
