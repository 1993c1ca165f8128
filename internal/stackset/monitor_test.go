package stackset

import (
	"testing"

	"github.com/hyprpal/stackwm/internal/layout"
)

var (
	left  = layout.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right = layout.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
)

func TestInitialMonitorBinding(t *testing.T) {
	ss := newTestSet(t, 3, left, right)
	if ss.Monitor(0) != 0 || ss.Monitor(1) != 1 || ss.Monitor(2) != 0 {
		t.Fatalf("unexpected bindings %d %d %d", ss.Monitor(0), ss.Monitor(1), ss.Monitor(2))
	}
	if !ss.Visible(0) || !ss.Visible(1) || ss.Visible(2) || ss.Visible(ss.NSP()) {
		t.Fatalf("unexpected visibility")
	}
}

func TestSwapMonitorsBetweenVisibleWorkspaces(t *testing.T) {
	ss := newTestSet(t, 2, left, right)
	ss.SwapMonitors(0, 1)
	if ss.Monitor(0) != 1 || ss.Monitor(1) != 0 {
		t.Fatalf("expected monitors to be exchanged")
	}
	if !ss.Visible(0) || !ss.Visible(1) {
		t.Fatalf("expected both workspaces to stay visible")
	}
	if got := ss.Region(0); got.X != 1920 || got.Height != 1024-10 {
		t.Fatalf("expected region to follow the monitor, got %+v", got)
	}
}

func TestSwapMonitorsWithHiddenWorkspace(t *testing.T) {
	ss := newTestSet(t, 3, left, right)
	ss.SwapMonitors(0, 2)
	if ss.Shown(0) != 2 || ss.Visible(0) {
		t.Fatalf("expected workspace 2 shown on monitor 0, got %d", ss.Shown(0))
	}
	if ss.Shown(1) != 1 {
		t.Fatalf("expected monitor 1 untouched")
	}
}

func TestSetMonitorIgnoresUnknownMonitor(t *testing.T) {
	ss := newTestSet(t, 2, left)
	ss.SetMonitor(1, 4)
	if ss.Monitor(1) != 0 {
		t.Fatalf("expected binding to stay on monitor 0")
	}
}
