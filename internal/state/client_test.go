package state

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyprpal/stackwm/internal/layout"
)

func TestSizeHintsFixed(t *testing.T) {
	tests := []struct {
		name  string
		hints SizeHints
		want  bool
	}{
		{"min equals max", SizeHints{MinWidth: 300, MinHeight: 200, MaxWidth: 300, MaxHeight: 200}, true},
		{"base stands in for min", SizeHints{BaseWidth: 300, BaseHeight: 200, MaxWidth: 300, MaxHeight: 200}, true},
		{"resizable", SizeHints{MinWidth: 100, MinHeight: 100, MaxWidth: 300, MaxHeight: 200}, false},
		{"no max", SizeHints{MinWidth: 300, MinHeight: 200}, false},
		{"no hints", SizeHints{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hints.Fixed(); got != tt.want {
				t.Fatalf("Fixed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClientClassification(t *testing.T) {
	c := &Client{}
	if !c.IsTiled() || c.AboveTiled() {
		t.Fatalf("expected zero client to be tiled")
	}
	c.Free = layout.PlacementCenter
	if c.IsTiled() || !c.AboveTiled() {
		t.Fatalf("expected free client above tiled clients")
	}
	c.Free = layout.PlacementTiled
	c.Dock = Docking{Pos: FixedLeft, Size: 0.2}
	if c.IsTiled() || c.AboveTiled() {
		t.Fatalf("expected docked client to be neither tiled nor above")
	}
}

func TestParseFixedPosition(t *testing.T) {
	p, err := ParseFixedPosition("Down")
	if err != nil || p != FixedDown {
		t.Fatalf("ParseFixedPosition(Down) = %v, %v", p, err)
	}
	if _, err := ParseFixedPosition("middle"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := &Snapshot{
		Current: 1,
		Workspaces: []WorkspaceSnapshot{
			{Index: 0, Clients: []Client{{Win: 1}}},
			{Index: 1, Clients: []Client{{Win: 2}, {Win: 3}}, Current: 3},
		},
		Scratchpad: WorkspaceSnapshot{Clients: []Client{{Win: 9, NSP: true}}},
	}
	if c := snap.ActiveClient(); c == nil || c.Win != 3 {
		t.Fatalf("expected active client 3, got %+v", c)
	}
	if c := snap.FindClient(9); c == nil || !c.NSP {
		t.Fatalf("expected scratchpad client, got %+v", c)
	}
	clone := CloneSnapshot(snap)
	clone.Workspaces[1].Clients[0].Title = "changed"
	if snap.Workspaces[1].Clients[0].Title != "" {
		t.Fatalf("expected clone to be independent")
	}
}

func TestClientJSONUsesNames(t *testing.T) {
	c := Client{Win: 7, Free: layout.PlacementBigCenter, Dock: Docking{Pos: FixedLeft, Size: 0.2}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"bigCenter"`) || !strings.Contains(string(data), `"left"`) {
		t.Fatalf("expected symbolic names in %s", data)
	}
	var back Client
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Free != c.Free || back.Dock != c.Dock {
		t.Fatalf("expected %+v, got %+v", c, back)
	}
	if err := json.Unmarshal([]byte(`{"free":"sideways"}`), &back); err == nil {
		t.Fatalf("expected unknown placement to fail")
	}
}
