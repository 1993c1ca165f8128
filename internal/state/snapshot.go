package state

import "github.com/hyprpal/stackwm/internal/layout"

// WorkspaceSnapshot is the serializable view of one workspace.
type WorkspaceSnapshot struct {
	Index     int         `json:"index"`
	Name      string      `json:"name"`
	Monitor   int         `json:"monitor"`
	Visible   bool        `json:"visible"`
	Layout    string      `json:"layout"`
	Toggled   bool        `json:"toggled"`
	Region    layout.Rect `json:"region"`
	Clients   []Client    `json:"clients"`
	Current   Window      `json:"current,omitempty"`
	Minimized []Client    `json:"minimized,omitempty"`
}

// Snapshot is a point-in-time copy of the managed state.
type Snapshot struct {
	Current    int                 `json:"current"`
	Last       int                 `json:"last"`
	Workspaces []WorkspaceSnapshot `json:"workspaces"`
	Scratchpad WorkspaceSnapshot   `json:"scratchpad"`
}

// FindClient returns the client managing win, or nil.
func (s *Snapshot) FindClient(win Window) *Client {
	for i := range s.Workspaces {
		for j := range s.Workspaces[i].Clients {
			if s.Workspaces[i].Clients[j].Win == win {
				return &s.Workspaces[i].Clients[j]
			}
		}
	}
	for j := range s.Scratchpad.Clients {
		if s.Scratchpad.Clients[j].Win == win {
			return &s.Scratchpad.Clients[j]
		}
	}
	return nil
}

// ActiveClient returns the focused client of the current workspace if any.
func (s *Snapshot) ActiveClient() *Client {
	if s.Current < 0 || s.Current >= len(s.Workspaces) {
		return nil
	}
	ws := s.Workspaces[s.Current]
	if ws.Current == 0 {
		return nil
	}
	return s.FindClient(ws.Current)
}

// CloneSnapshot returns a deep copy of src.
func CloneSnapshot(src *Snapshot) *Snapshot {
	if src == nil {
		return nil
	}
	out := *src
	out.Workspaces = make([]WorkspaceSnapshot, len(src.Workspaces))
	for i, ws := range src.Workspaces {
		out.Workspaces[i] = cloneWorkspace(ws)
	}
	out.Scratchpad = cloneWorkspace(src.Scratchpad)
	return &out
}

func cloneWorkspace(ws WorkspaceSnapshot) WorkspaceSnapshot {
	if len(ws.Clients) > 0 {
		ws.Clients = append([]Client(nil), ws.Clients...)
	}
	if len(ws.Minimized) > 0 {
		ws.Minimized = append([]Client(nil), ws.Minimized...)
	}
	return ws
}
