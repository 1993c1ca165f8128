package control

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hyprpal/stackwm/internal/engine"
	"github.com/hyprpal/stackwm/internal/metrics"
	"github.com/hyprpal/stackwm/internal/state"
)

const (
	// SocketFileName is the filename of the control socket within the runtime dir.
	SocketFileName = "control.sock"

	// Action names supported by the control protocol.
	ActionState           = "state"
	ActionWorkspaceGet    = "workspace.get"
	ActionWorkspaceSet    = "workspace.set"
	ActionWorkspaceAction = "workspace.action"
	ActionLayoutNext      = "layout.next"
	ActionLayoutToggle    = "layout.toggle"
	ActionClientAction    = "client.action"
	ActionNSPToggle       = "nsp.toggle"
	ActionReload          = "reload"
	ActionMetrics         = "metrics"
	ActionEvents          = "events"

	// Response statuses.
	StatusOK    = "ok"
	StatusError = "error"
)

// Request represents a control API request.
type Request struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params,omitempty"`
}

// Response represents a control API response.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// WorkspaceStatus describes the current and last workspace.
type WorkspaceStatus struct {
	Current int    `json:"current"`
	Last    int    `json:"last"`
	Name    string `json:"name"`
	Layout  string `json:"layout"`
}

type (
	// State is the managed state returned by the state action.
	State = state.Snapshot
	// Metrics is the counter snapshot returned by the metrics action.
	Metrics = metrics.Snapshot
	// EventRecord is one entry of the events action.
	EventRecord = engine.EventRecord
)

// DefaultSocketPath returns the expected location of the stackwm control socket.
func DefaultSocketPath() (string, error) {
	if env := os.Getenv("STACKWM_CONTROL_SOCKET"); env != "" {
		return env, nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	base := runtimeDir
	if base == "" {
		base = os.TempDir()
		if base == "" {
			return "", errors.New("no runtime directory available")
		}
	}
	return filepath.Join(base, "stackwm", SocketFileName), nil
}
