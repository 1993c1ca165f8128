package stackset

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

var screen = layout.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

func newTestSet(t *testing.T, n int, monitors ...layout.Rect) *StackSet {
	t.Helper()
	if len(monitors) == 0 {
		monitors = []layout.Rect{screen}
	}
	workspaces := make([]Workspace, n)
	for i := range workspaces {
		workspaces[i] = Workspace{
			Name:       string(rune('a' + i)),
			Gaps:       layout.Gaps{Up: 10},
			Layouts:    []layout.Layout{{Name: "tile"}, {Name: "mirror", Kind: layout.KindMirror}},
			TogLayouts: []layout.Layout{{Name: "full", Kind: layout.KindMonocle}},
		}
	}
	ss, err := New(workspaces, monitors)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return ss
}

func add(ss *StackSet, ws int, win state.Window) Handle {
	return ss.AddEnd(&state.Client{Win: win, WS: ws})
}

func windows(ss *StackSet, ws int) []state.Window {
	var out []state.Window
	for _, h := range ss.Handles(ws) {
		out = append(out, ss.Client(h).Win)
	}
	return out
}

func checkConsistent(t *testing.T, ss *StackSet, ws int) {
	t.Helper()
	forward := 0
	for h := ss.HeadClient(ws); !h.IsZero(); h = ss.Next(h) {
		if ss.Client(h).WS != ss.index(ws) {
			t.Fatalf("client %v has ws %d, stored in %d", ss.Client(h).Win, ss.Client(h).WS, ws)
		}
		forward++
	}
	backward := 0
	for h := ss.LastClient(ws); !h.IsZero(); h = ss.Prev(h) {
		backward++
	}
	size := ss.StackSize(ws)
	if forward != size || backward != size {
		t.Fatalf("size %d, forward %d, backward %d", size, forward, backward)
	}
	curr := ss.CurrClient(ws)
	if size == 0 && !curr.IsZero() {
		t.Fatalf("empty stack has a current client")
	}
	if size > 0 && !ss.Valid(curr) {
		t.Fatalf("non-empty stack without a valid current client")
	}
}

func TestNewRequiresLayouts(t *testing.T) {
	_, err := New([]Workspace{{Name: "a", Layouts: []layout.Layout{{}}}, {Name: "b"}}, []layout.Rect{screen})
	if !errors.Is(err, ErrNoLayouts) {
		t.Fatalf("expected ErrNoLayouts, got %v", err)
	}
	if _, err := New(nil, []layout.Rect{screen}); !errors.Is(err, ErrNoWorkspaces) {
		t.Fatalf("expected ErrNoWorkspaces, got %v", err)
	}
}

func TestNewDerivesRegionFromGaps(t *testing.T) {
	ss := newTestSet(t, 2)
	want := layout.Rect{X: 0, Y: 10, Width: 1920, Height: 1070}
	if got := ss.Region(1); got != want {
		t.Fatalf("Region() = %+v, want %+v", got, want)
	}
	if ss.NSP() != 2 || !ss.IsNSP(2) || ss.Size() != 2 {
		t.Fatalf("unexpected scratchpad index %d", ss.NSP())
	}
}

func TestInsertOrder(t *testing.T) {
	ss := newTestSet(t, 1)
	for w := state.Window(1); w <= 4; w++ {
		ss.AddEnd(&state.Client{Win: w})
	}
	if diff := cmp.Diff([]state.Window{1, 2, 3, 4}, windows(ss, 0)); diff != "" {
		t.Fatalf("AddEnd order mismatch (-want +got):\n%s", diff)
	}

	ss = newTestSet(t, 1)
	for w := state.Window(1); w <= 4; w++ {
		ss.AddStart(&state.Client{Win: w})
	}
	if diff := cmp.Diff([]state.Window{4, 3, 2, 1}, windows(ss, 0)); diff != "" {
		t.Fatalf("AddStart order mismatch (-want +got):\n%s", diff)
	}
	if ss.Client(ss.CurrClient(0)).Win != 4 {
		t.Fatalf("expected last inserted client to be current")
	}
}

func TestInsertNextToCurrent(t *testing.T) {
	ss := newTestSet(t, 1)
	first := add(ss, 0, 1)
	add(ss, 0, 2)
	ss.SetCurrClient(first)
	add(ss, 0, 3)
	if diff := cmp.Diff([]state.Window{1, 3, 2}, windows(ss, 0)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if !ss.IsPrevClient(first) {
		t.Fatalf("expected previous selection to be the old current client")
	}
}

func TestRemoveSelectsSuccessor(t *testing.T) {
	ss := newTestSet(t, 1)
	h1 := add(ss, 0, 1)
	h2 := add(ss, 0, 2)
	h3 := add(ss, 0, 3)
	ss.SetCurrClient(h1)

	c := ss.Remove(h2)
	if c == nil || c.Win != 2 {
		t.Fatalf("expected to get client 2 back, got %+v", c)
	}
	if !ss.IsCurrClient(h3) {
		t.Fatalf("expected successor to become current")
	}
	if ss.Valid(h2) || ss.Client(h2) != nil {
		t.Fatalf("expected removed handle to be invalid")
	}
	checkConsistent(t, ss, 0)
}

func TestRemoveLastSelectsPredecessor(t *testing.T) {
	ss := newTestSet(t, 1)
	h1 := add(ss, 0, 1)
	h2 := add(ss, 0, 2)
	ss.Remove(h2)
	if !ss.IsCurrClient(h1) || !ss.IsLast(h1) || !ss.IsHead(h1) {
		t.Fatalf("expected sole remaining client to be head, last and current")
	}
	ss.Remove(h1)
	if !ss.CurrClient(0).IsZero() || !ss.IsEmpty(0) {
		t.Fatalf("expected empty stack without current client")
	}
	checkConsistent(t, ss, 0)
}

func TestRemoveHeadRelinks(t *testing.T) {
	ss := newTestSet(t, 1)
	h1 := add(ss, 0, 1)
	h2 := add(ss, 0, 2)
	add(ss, 0, 3)
	ss.Remove(h1)
	if !ss.IsHead(h2) || !ss.Prev(h2).IsZero() {
		t.Fatalf("expected client 2 to become head")
	}
	checkConsistent(t, ss, 0)
}

func TestRemoveClearsPreviousSelection(t *testing.T) {
	ss := newTestSet(t, 1)
	h1 := add(ss, 0, 1)
	add(ss, 0, 2)
	if !ss.IsPrevClient(h1) {
		t.Fatalf("expected client 1 to be the previous selection")
	}
	ss.Remove(h1)
	if !ss.PrevClient(0).IsZero() {
		t.Fatalf("expected previous selection to be cleared")
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	ss := newTestSet(t, 1)
	h1 := add(ss, 0, 1)
	ss.Remove(h1)
	h2 := add(ss, 0, 2)
	if ss.Valid(h1) {
		t.Fatalf("expected stale handle to stay invalid after slot reuse")
	}
	if ss.Client(h2).Win != 2 {
		t.Fatalf("expected new handle to resolve")
	}
	if ss.Remove(h1) != nil {
		t.Fatalf("expected removing a stale handle to do nothing")
	}
	checkConsistent(t, ss, 0)
}

func TestRandomInsertRemoveKeepsListConsistent(t *testing.T) {
	ss := newTestSet(t, 3)
	rng := rand.New(rand.NewSource(42))
	var live []Handle
	next := state.Window(1)
	for i := 0; i < 2000; i++ {
		if len(live) == 0 || rng.Intn(3) > 0 {
			c := &state.Client{Win: next, WS: rng.Intn(3), NSP: rng.Intn(10) == 0}
			next++
			var h Handle
			if rng.Intn(2) == 0 {
				h = ss.AddEnd(c)
			} else {
				h = ss.AddStart(c)
			}
			live = append(live, h)
		} else {
			j := rng.Intn(len(live))
			h := live[j]
			wasCurr := ss.IsCurrClient(h)
			if c := ss.Remove(h); c == nil {
				t.Fatalf("remove of live handle failed")
			}
			live = append(live[:j], live[j+1:]...)
			if wasCurr && ss.StackSize(h.WS()) > 0 && !ss.Valid(ss.CurrClient(h.WS())) {
				t.Fatalf("current client invalid after removing current")
			}
		}
		if rng.Intn(5) == 0 && len(live) > 0 {
			ss.SetCurrClient(live[rng.Intn(len(live))])
		}
		for ws := 0; ws < 3; ws++ {
			checkConsistent(t, ss, ws)
			checkNSPCache(t, ss, ws)
		}
	}
}

func checkNSPCache(t *testing.T, ss *StackSet, ws int) {
	t.Helper()
	want := ss.FindIn(ws, func(c *state.Client) bool { return c.NSP })
	s := ss.stacks[ws]
	if want.IsZero() {
		if s.nsp != none {
			t.Fatalf("ws %d: nsp cache set without scratchpad clients", ws)
		}
		return
	}
	// Inserts update the cache directly, so it names some scratchpad client.
	if s.nsp == none || !s.nodes[s.nsp].used || !s.nodes[s.nsp].cli.NSP {
		t.Fatalf("ws %d: nsp cache does not name a scratchpad client", ws)
	}
}

func TestNSPRescanOnRemove(t *testing.T) {
	ss := newTestSet(t, 1)
	h1 := ss.AddEnd(&state.Client{Win: 1, NSP: true})
	add(ss, 0, 2)
	h3 := ss.AddEnd(&state.Client{Win: 3, NSP: true})
	if got := ss.FindNSP(); got != h3 {
		t.Fatalf("expected cache to point at last inserted scratchpad")
	}
	ss.Remove(h3)
	if got := ss.FindNSP(); got != h1 {
		t.Fatalf("expected rescan to find client 1, got %+v", got)
	}
	ss.Remove(h1)
	if !ss.FindNSP().IsZero() {
		t.Fatalf("expected no scratchpad after removal")
	}
}

func TestFindSearchesCurrentWorkspaceFirst(t *testing.T) {
	ss := newTestSet(t, 3)
	ss.AddEnd(&state.Client{Win: 1, WS: 0, Class: "term"})
	want := ss.AddEnd(&state.Client{Win: 2, WS: 2, Class: "term"})
	ss.SetCurr(2)
	got := ss.Find(func(c *state.Client) bool { return c.Class == "term" })
	if got != want {
		t.Fatalf("expected match in current workspace, got %+v", ss.Client(got))
	}
	hidden := ss.AddEnd(&state.Client{Win: 9, WS: ss.NSP(), Class: "pad"})
	if got := ss.Find(func(c *state.Client) bool { return c.Class == "pad" }); got != hidden {
		t.Fatalf("expected scratchpad stack to be searched")
	}
}

func TestSwapExchangesClients(t *testing.T) {
	ss := newTestSet(t, 2)
	h1 := add(ss, 0, 1)
	h2 := add(ss, 0, 2)
	add(ss, 0, 3)
	if !ss.Swap(h1, h2) {
		t.Fatalf("expected swap to succeed")
	}
	if diff := cmp.Diff([]state.Window{2, 1, 3}, windows(ss, 0)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	other := add(ss, 1, 4)
	if ss.Swap(h1, other) {
		t.Fatalf("expected swap across workspaces to be refused")
	}
	checkConsistent(t, ss, 0)
}

func TestWorkspaceIndices(t *testing.T) {
	ss := newTestSet(t, 4)
	if ss.PrevIndex() != 3 || ss.NextIndex() != 1 {
		t.Fatalf("unexpected neighbours %d %d", ss.PrevIndex(), ss.NextIndex())
	}
	ss.SetCurr(3)
	if ss.NextIndex() != 0 || ss.Last() != 0 {
		t.Fatalf("unexpected state after SetCurr: next=%d last=%d", ss.NextIndex(), ss.Last())
	}
	ss.SetCurr(9)
	if ss.Curr() != 1 || ss.Last() != 3 {
		t.Fatalf("expected SetCurr to wrap, curr=%d last=%d", ss.Curr(), ss.Last())
	}
}

func TestAddNormalisesWorkspace(t *testing.T) {
	ss := newTestSet(t, 3)
	c := &state.Client{Win: 1, WS: 4}
	h := ss.AddEnd(c)
	if c.WS != 1 || h.WS() != 1 {
		t.Fatalf("expected client to land in workspace 1, got %d", c.WS)
	}
}

func TestClientRegionStartsAtFloatRegion(t *testing.T) {
	ss := newTestSet(t, 1)
	r := layout.Rect{X: 5, Y: 6, Width: 70, Height: 80}
	h := ss.AddEnd(&state.Client{Win: 1, FloatRegion: r})
	if ss.ClientRegion(h) != r {
		t.Fatalf("expected node region to start at float region")
	}
	r2 := layout.Rect{Width: 1, Height: 1}
	ss.SetClientRegion(h, r2)
	if ss.ClientRegion(h) != r2 {
		t.Fatalf("SetClientRegion did not store region")
	}
}

func TestCloseReturnsEveryClient(t *testing.T) {
	ss := newTestSet(t, 2)
	add(ss, 0, 1)
	add(ss, 1, 2)
	ss.PushMinimized(&state.Client{Win: 3, WS: 1})
	ss.AddEnd(&state.Client{Win: 4, WS: ss.NSP()})
	if got := len(ss.Close()); got != 4 {
		t.Fatalf("expected 4 clients back, got %d", got)
	}
	for ws := 0; ws <= ss.Size(); ws++ {
		if !ss.IsEmpty(ws) || ss.MinimizedNum(ws) != 0 {
			t.Fatalf("expected workspace %d to be empty", ws)
		}
	}
}
