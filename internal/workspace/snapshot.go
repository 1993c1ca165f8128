package workspace

import (
	"github.com/hyprpal/stackwm/internal/state"
)

// Snapshot copies the managed state for the control socket.
func (c *Controller) Snapshot() *state.Snapshot {
	ss := c.ss
	snap := &state.Snapshot{Current: ss.Curr(), Last: ss.Last()}
	for ws := 0; ws < ss.Size(); ws++ {
		snap.Workspaces = append(snap.Workspaces, c.workspaceSnapshot(ws))
	}
	snap.Scratchpad = c.workspaceSnapshot(ss.NSP())
	return snap
}

func (c *Controller) workspaceSnapshot(ws int) state.WorkspaceSnapshot {
	ss := c.ss
	out := state.WorkspaceSnapshot{
		Index:   ws,
		Name:    ss.Name(ws),
		Monitor: ss.Monitor(ws),
		Visible: ss.Visible(ws),
		Layout:  ss.CurrLayout(ws).Name,
		Toggled: ss.IsTogLayout(ws),
		Region:  ss.Region(ws),
	}
	for _, h := range ss.Handles(ws) {
		out.Clients = append(out.Clients, *ss.Client(h))
	}
	if cli := ss.Client(ss.CurrClient(ws)); cli != nil {
		out.Current = cli.Win
	}
	for _, cli := range ss.Minimized(ws) {
		out.Minimized = append(out.Minimized, *cli)
	}
	return out
}
