package workspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
)

func managed(t *testing.T, f *fixture, ws ...state.Window) map[state.Window]stackset.Handle {
	t.Helper()
	out := make(map[state.Window]stackset.Handle, len(ws))
	for _, w := range ws {
		out[w] = f.manage(t, w, layout.Rect{})
	}
	return out
}

func TestParseSelector(t *testing.T) {
	cases := map[string]Selector{
		"self":         SelectSelf,
		"next":         SelectNext,
		"prev":         SelectPrev,
		"head":         SelectHead,
		"last":         SelectLast,
		"prevSelected": SelectPrevSelected,
		"bogus":        SelectSelf,
	}
	for in, want := range cases {
		if got := ParseSelector(in); got != want {
			t.Fatalf("ParseSelector(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveWraps(t *testing.T) {
	f := newFixture(t, 1, nil)
	h := managed(t, f, 1, 2, 3)
	win := func(h stackset.Handle) state.Window { return f.ss.Client(h).Win }

	if got := win(f.ctl.Resolve(h[3], SelectNext)); got != 1 {
		t.Fatalf("next of last: expected 1, got %d", got)
	}
	if got := win(f.ctl.Resolve(h[1], SelectPrev)); got != 3 {
		t.Fatalf("prev of head: expected 3, got %d", got)
	}
	if got := win(f.ctl.Resolve(h[2], SelectHead)); got != 1 {
		t.Fatalf("head: expected 1, got %d", got)
	}
	if got := win(f.ctl.Resolve(h[2], SelectLast)); got != 3 {
		t.Fatalf("last: expected 3, got %d", got)
	}
	if got := win(f.ctl.Resolve(h[1], SelectPrevSelected)); got != 2 {
		t.Fatalf("previously selected: expected 2, got %d", got)
	}
}

func TestMissingTargetIsNoop(t *testing.T) {
	f := newFixture(t, 1, nil)
	h := managed(t, f, 1)
	if err := f.ctl.Unmanage(1); err != nil {
		t.Fatalf("Unmanage returned error: %v", err)
	}
	restacks := len(f.disp.restacks)

	if err := f.ctl.ClientFocus(stackset.Handle{}, SelectSelf); err != nil {
		t.Fatalf("ClientFocus returned error: %v", err)
	}
	if err := f.ctl.ClientKill(h[1], SelectSelf); err != nil {
		t.Fatalf("ClientKill returned error: %v", err)
	}
	if err := f.ctl.ClientSend(h[1], SelectNext, 0); err != nil {
		t.Fatalf("ClientSend returned error: %v", err)
	}
	if len(f.disp.killed) != 0 || len(f.disp.restacks) != restacks {
		t.Fatalf("expected stale handles to be ignored")
	}
}

func TestClientKill(t *testing.T) {
	f := newFixture(t, 1, nil)
	h := managed(t, f, 1, 2)
	if err := f.ctl.ClientKill(h[2], SelectNext); err != nil {
		t.Fatalf("ClientKill returned error: %v", err)
	}
	if diff := cmp.Diff([]state.Window{1}, f.disp.killed); diff != "" {
		t.Fatalf("killed mismatch (-want +got):\n%s", diff)
	}
	if f.ss.StackSize(0) != 2 {
		t.Fatalf("expected kill to leave the stack until the window is destroyed")
	}
}

func TestClientSwapKeepsFocusOnMovedClient(t *testing.T) {
	f := newFixture(t, 1, nil)
	h := managed(t, f, 1, 2, 3)
	if err := f.ctl.ClientSwap(h[1], SelectNext); err != nil {
		t.Fatalf("ClientSwap returned error: %v", err)
	}
	if diff := cmp.Diff([]state.Window{2, 1, 3}, f.windows(0)); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}
	if f.disp.focused != 1 {
		t.Fatalf("expected moved client focused, got %d", f.disp.focused)
	}
	if got := f.disp.configured[2].Rect; got.X != 0 {
		t.Fatalf("expected window 2 in the master area, got %+v", got)
	}
}

func TestClientSendCentersDefaultPlacement(t *testing.T) {
	f := newFixture(t, 2, nil)
	h := managed(t, f, 1, 2)
	if err := f.ctl.ClientFree(h[1], SelectSelf, layout.PlacementDefault); err != nil {
		t.Fatalf("ClientFree returned error: %v", err)
	}
	if err := f.ctl.ClientSend(h[1], SelectSelf, 1); err != nil {
		t.Fatalf("ClientSend returned error: %v", err)
	}

	if diff := cmp.Diff([]state.Window{2}, f.windows(0)); diff != "" {
		t.Fatalf("workspace 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]state.Window{1}, f.windows(1)); diff != "" {
		t.Fatalf("workspace 1 mismatch (-want +got):\n%s", diff)
	}
	moved := f.ss.Client(f.ctl.FindWindow(1, 1))
	if moved.Free != layout.PlacementCenter || moved.WS != 1 {
		t.Fatalf("unexpected moved client %+v", moved)
	}
	if want := (layout.Rect{X: 250, Y: 0, Width: 500, Height: 500}); moved.FloatRegion != want {
		t.Fatalf("expected %+v, got %+v", want, moved.FloatRegion)
	}
	if got := f.disp.configured[1].Rect; got.X >= 0 {
		t.Fatalf("expected sent window off-screen, got %+v", got)
	}
	if got := f.disp.configured[2].Rect; got != screen {
		t.Fatalf("expected window 2 to take the screen, got %+v", got)
	}
	if f.disp.focused != 2 || f.ss.Curr() != 0 {
		t.Fatalf("expected focus to stay on workspace 0")
	}
}

func TestClientSendInsertsAtFront(t *testing.T) {
	f := newFixture(t, 2, nil)
	h := managed(t, f, 1, 2, 3)
	if err := f.ctl.ClientSend(h[3], SelectSelf, 1); err != nil {
		t.Fatalf("ClientSend returned error: %v", err)
	}
	if err := f.ctl.ClientSend(h[1], SelectSelf, 1); err != nil {
		t.Fatalf("ClientSend returned error: %v", err)
	}
	if diff := cmp.Diff([]state.Window{1, 3}, f.windows(1)); diff != "" {
		t.Fatalf("workspace 1 mismatch (-want +got):\n%s", diff)
	}
	if err := f.ctl.ClientSend(f.ss.CurrClient(0), SelectSelf, 7); err != nil {
		t.Fatalf("ClientSend returned error: %v", err)
	}
	if f.ss.StackSize(0) != 1 {
		t.Fatalf("expected out-of-range workspace to be refused")
	}
}

func TestMinimizeAndRestore(t *testing.T) {
	f := newFixture(t, 1, nil)
	managed(t, f, 1, 2, 3)
	if err := f.ctl.ClientMinimize(f.ss.CurrClient(0), SelectSelf); err != nil {
		t.Fatalf("ClientMinimize returned error: %v", err)
	}
	if diff := cmp.Diff([]state.Window{1, 2}, f.windows(0)); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}
	if got := f.disp.configured[3].Rect; got.X >= 0 {
		t.Fatalf("expected minimized window off-screen, got %+v", got)
	}
	if f.disp.focused != 2 {
		t.Fatalf("expected predecessor focused, got %d", f.disp.focused)
	}

	if err := f.ctl.RestoreLastMinimized(0); err != nil {
		t.Fatalf("RestoreLastMinimized returned error: %v", err)
	}
	if diff := cmp.Diff([]state.Window{1, 3, 2}, f.windows(0)); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}
	if f.disp.focused != 3 || f.ss.MinimizedNum(0) != 0 {
		t.Fatalf("expected restored window focused")
	}
	if err := f.ctl.RestoreLastMinimized(0); err != nil {
		t.Fatalf("RestoreLastMinimized on empty pool returned error: %v", err)
	}
}

func TestBulkOperations(t *testing.T) {
	f := newFixture(t, 1, nil)
	managed(t, f, 1, 2)

	if err := f.ctl.Free(0, layout.PlacementCenter); err != nil {
		t.Fatalf("Free returned error: %v", err)
	}
	for _, h := range f.ss.Handles(0) {
		if cli := f.ss.Client(h); cli.Free != layout.PlacementCenter {
			t.Fatalf("expected %d centered, got %v", cli.Win, cli.Free)
		}
	}
	if err := f.ctl.Tile(0); err != nil {
		t.Fatalf("Tile returned error: %v", err)
	}
	if got := f.disp.configured[2].Rect; got != (layout.Rect{X: 500, Width: 500, Height: 500}) {
		t.Fatalf("expected window 2 tiled again, got %+v", got)
	}
	if err := f.ctl.Minimize(0); err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	if f.ss.StackSize(0) != 0 || f.ss.MinimizedNum(0) != 2 {
		t.Fatalf("expected every client minimized")
	}
	if f.disp.cleared == 0 {
		t.Fatalf("expected active window cleared on empty workspace")
	}
}

func TestClientStateToggles(t *testing.T) {
	f := newFixture(t, 1, nil)
	h := managed(t, f, 1)
	cli := f.ss.Client(h[1])

	if err := f.ctl.ClientToggleFree(h[1], SelectSelf, layout.PlacementBigCenter); err != nil {
		t.Fatalf("ClientToggleFree returned error: %v", err)
	}
	if want := (layout.Rect{X: 50, Y: 25, Width: 900, Height: 450}); cli.FloatRegion != want {
		t.Fatalf("expected %+v, got %+v", want, cli.FloatRegion)
	}
	if err := f.ctl.ClientToggleFree(h[1], SelectSelf, layout.PlacementBigCenter); err != nil {
		t.Fatalf("ClientToggleFree returned error: %v", err)
	}
	if cli.IsFree() {
		t.Fatalf("expected client tiled again")
	}

	if err := f.ctl.ClientToggleFullscreen(h[1], SelectSelf); err != nil {
		t.Fatalf("ClientToggleFullscreen returned error: %v", err)
	}
	if !cli.Fullscreen {
		t.Fatalf("expected fullscreen")
	}
	if err := f.ctl.ClientFree(h[1], SelectSelf, layout.PlacementTiled); err != nil {
		t.Fatalf("ClientFree returned error: %v", err)
	}
	if cli.Free != layout.PlacementDefault {
		t.Fatalf("expected tiled placement to float with default geometry, got %v", cli.Free)
	}
	if err := f.ctl.ClientNormal(h[1], SelectSelf); err != nil {
		t.Fatalf("ClientNormal returned error: %v", err)
	}
	if cli.IsFree() || cli.Fullscreen || !cli.IsTiled() {
		t.Fatalf("expected normal tiled client, got %+v", cli)
	}
	if err := f.ctl.ClientFullscreen(h[1], SelectSelf); err != nil || !cli.Fullscreen {
		t.Fatalf("expected ClientFullscreen to set fullscreen")
	}
	if err := f.ctl.ClientTile(h[1], SelectSelf); err != nil {
		t.Fatalf("ClientTile returned error: %v", err)
	}
}

func TestClientMoveAndResizeFloatTiledClients(t *testing.T) {
	f := newFixture(t, 1, nil)
	h := managed(t, f, 1)
	if err := f.ctl.ClientMove(h[1], SelectSelf, 10, 20); err != nil {
		t.Fatalf("ClientMove returned error: %v", err)
	}
	cli := f.ss.Client(h[1])
	if cli.Free != layout.PlacementDefault {
		t.Fatalf("expected client to float, got %v", cli.Free)
	}
	if want := (layout.Rect{X: 10, Y: 20, Width: 1000, Height: 500}); f.disp.configured[1].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, f.disp.configured[1].Rect)
	}
	if err := f.ctl.ClientResize(h[1], SelectSelf, -400, -200); err != nil {
		t.Fatalf("ClientResize returned error: %v", err)
	}
	if want := (layout.Rect{X: 10, Y: 20, Width: 600, Height: 300}); f.disp.configured[1].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, f.disp.configured[1].Rect)
	}
}
