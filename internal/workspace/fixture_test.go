package workspace

import (
	"errors"
	"testing"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/state"
)

var screen = layout.Rect{X: 0, Y: 0, Width: 1000, Height: 500}

type fakeDisplay struct {
	focused    state.Window
	active     state.Window
	cleared    int
	grabbed    map[state.Window]bool
	order      []state.Window
	restacks   [][]state.Window
	configured map[state.Window]Geometry
	killed     []state.Window
	enter      map[state.Window]bool
	fullscreen map[state.Window]bool
	armed      int // configures issued while enter-notify was on
	stackErr   error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		grabbed:    map[state.Window]bool{},
		configured: map[state.Window]Geometry{},
		enter:      map[state.Window]bool{},
		fullscreen: map[state.Window]bool{},
	}
}

func (d *fakeDisplay) SetInputFocus(w state.Window) error   { d.focused = w; return nil }
func (d *fakeDisplay) SetActiveWindow(w state.Window) error { d.active = w; return nil }
func (d *fakeDisplay) ClearActiveWindow() error             { d.active = 0; d.cleared++; return nil }
func (d *fakeDisplay) GrabButtons(w state.Window) error     { d.grabbed[w] = true; return nil }
func (d *fakeDisplay) UngrabButtons(w state.Window) error   { d.grabbed[w] = false; return nil }
func (d *fakeDisplay) Kill(w state.Window) error            { d.killed = append(d.killed, w); return nil }

func (d *fakeDisplay) SelectInput(w state.Window, enter bool) error {
	d.enter[w] = enter
	return nil
}

func (d *fakeDisplay) StackingOrder() ([]state.Window, error) {
	if d.stackErr != nil {
		return nil, d.stackErr
	}
	return append([]state.Window(nil), d.order...), nil
}

func (d *fakeDisplay) Restack(windows []state.Window) error {
	d.restacks = append(d.restacks, append([]state.Window(nil), windows...))
	d.order = d.order[:0]
	for i := len(windows) - 1; i >= 0; i-- {
		d.order = append(d.order, windows[i])
	}
	return nil
}

func (d *fakeDisplay) Configure(w state.Window, g Geometry) error {
	if d.enter[w] {
		d.armed++
	}
	d.configured[w] = g
	return nil
}

func (d *fakeDisplay) SetFullscreenState(w state.Window, on bool) error {
	d.fullscreen[w] = on
	return nil
}

func (d *fakeDisplay) lastRestack() []state.Window {
	if len(d.restacks) == 0 {
		return nil
	}
	return d.restacks[len(d.restacks)-1]
}

type fakeInfo struct {
	hints map[state.Window]state.SizeHints
	class map[state.Window][2]string
}

func (f fakeInfo) SizeHints(w state.Window) (state.SizeHints, error) {
	if h, ok := f.hints[w]; ok {
		return h, nil
	}
	return state.SizeHints{}, errors.New("no hints")
}

func (f fakeInfo) ClassAndName(w state.Window) (string, string, error) {
	v := f.class[w]
	return v[0], v[1], nil
}

func (f fakeInfo) Title(state.Window) (string, error) { return "", nil }

type fixture struct {
	ctl  *Controller
	ss   *stackset.StackSet
	disp *fakeDisplay
	info fakeInfo
}

func newFixture(t *testing.T, workspaces int, ruleList []rules.Rule, monitors ...layout.Rect) *fixture {
	t.Helper()
	if len(monitors) == 0 {
		monitors = []layout.Rect{screen}
	}
	cfg := make([]stackset.Workspace, workspaces)
	for i := range cfg {
		cfg[i] = stackset.Workspace{
			Name: string(rune('a' + i)),
			Layouts: []layout.Layout{
				{Name: "tile", Kind: layout.KindTile, FollowMouse: true},
				{Name: "full", Kind: layout.KindMonocle},
			},
			TogLayouts: []layout.Layout{{Name: "float", Kind: layout.KindFloat}},
		}
	}
	ss, err := stackset.New(cfg, monitors)
	if err != nil {
		t.Fatalf("stackset.New: %v", err)
	}
	info := fakeInfo{hints: map[state.Window]state.SizeHints{}, class: map[state.Window][2]string{}}
	disp := newFakeDisplay()
	ctl := New(ss, rules.NewEngine(ruleList, info, nil, nil), disp, nil)
	return &fixture{ctl: ctl, ss: ss, disp: disp, info: info}
}

func (f *fixture) manage(t *testing.T, w state.Window, geom layout.Rect) stackset.Handle {
	t.Helper()
	f.disp.order = append(f.disp.order, w)
	if err := f.ctl.Manage(w, state.Attributes{Geometry: geom}); err != nil {
		t.Fatalf("Manage(%d): %v", w, err)
	}
	h := f.ctl.FindAny(w)
	if h.IsZero() {
		t.Fatalf("window %d not managed", w)
	}
	return h
}

func (f *fixture) windows(ws int) []state.Window {
	var out []state.Window
	for _, h := range f.ss.Handles(ws) {
		out = append(out, f.ss.Client(h).Win)
	}
	return out
}
