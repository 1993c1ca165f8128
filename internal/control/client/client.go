package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/hyprpal/stackwm/internal/control"
)

const (
	// defaultTimeout is used when the caller does not provide a context deadline.
	defaultTimeout = 3 * time.Second
)

// Client talks to the running stackwm daemon over its control socket.
type Client struct {
	socketPath string
}

type (
	// State is the managed state reported by the daemon.
	State = control.State
	// WorkspaceStatus describes the current and last workspace.
	WorkspaceStatus = control.WorkspaceStatus
	// Metrics mirrors the counter snapshot returned by the daemon.
	Metrics = control.Metrics
	// EventRecord is one recently handled windowing event.
	EventRecord = control.EventRecord
)

// ClientAction describes a single-client action. Selector picks the target
// relative to the focused client.
type ClientAction struct {
	Action    string
	Selector  string
	Workspace string
	Placement string
	DX, DY    int
}

// New creates a client that connects to the provided socket path. When path is
// empty, the default runtime path is used.
func New(path string) (*Client, error) {
	if path == "" {
		var err error
		path, err = control.DefaultSocketPath()
		if err != nil {
			return nil, err
		}
	}
	return &Client{socketPath: path}, nil
}

// State retrieves the daemon's managed state.
func (c *Client) State(ctx context.Context) (*State, error) {
	var st State
	if err := c.do(ctx, control.Request{Action: control.ActionState}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Workspace retrieves the current workspace.
func (c *Client) Workspace(ctx context.Context) (WorkspaceStatus, error) {
	var status WorkspaceStatus
	if err := c.do(ctx, control.Request{Action: control.ActionWorkspaceGet}, &status); err != nil {
		return WorkspaceStatus{}, err
	}
	return status, nil
}

// SetWorkspace switches to the workspace named by selector.
func (c *Client) SetWorkspace(ctx context.Context, selector string) error {
	if selector == "" {
		return errors.New("workspace selector cannot be empty")
	}
	params := map[string]any{"workspace": selector}
	return c.do(ctx, control.Request{Action: control.ActionWorkspaceSet, Params: params}, nil)
}

// WorkspaceAction runs a bulk action (tile, free, minimize, restore).
func (c *Client) WorkspaceAction(ctx context.Context, action, selector, placement string) error {
	if action == "" {
		return errors.New("action cannot be empty")
	}
	params := map[string]any{"action": action, "workspace": selector, "placement": placement}
	return c.do(ctx, control.Request{Action: control.ActionWorkspaceAction, Params: params}, nil)
}

// NextLayout cycles the layout of the selected workspace.
func (c *Client) NextLayout(ctx context.Context, selector string) error {
	params := map[string]any{"workspace": selector}
	return c.do(ctx, control.Request{Action: control.ActionLayoutNext, Params: params}, nil)
}

// ToggleLayout toggles overlay layout index on the selected workspace.
func (c *Client) ToggleLayout(ctx context.Context, selector string, index int) error {
	params := map[string]any{"workspace": selector, "index": index}
	return c.do(ctx, control.Request{Action: control.ActionLayoutToggle, Params: params}, nil)
}

// Client runs a single-client action.
func (c *Client) Client(ctx context.Context, a ClientAction) error {
	if a.Action == "" {
		return errors.New("action cannot be empty")
	}
	params := map[string]any{
		"action":    a.Action,
		"selector":  a.Selector,
		"workspace": a.Workspace,
		"placement": a.Placement,
		"dx":        a.DX,
		"dy":        a.DY,
	}
	return c.do(ctx, control.Request{Action: control.ActionClientAction, Params: params}, nil)
}

// ToggleNSP shows or hides the named scratchpad.
func (c *Client) ToggleNSP(ctx context.Context) error {
	return c.do(ctx, control.Request{Action: control.ActionNSPToggle}, nil)
}

// Reload asks the daemon to reload its configuration.
func (c *Client) Reload(ctx context.Context) error {
	return c.do(ctx, control.Request{Action: control.ActionReload}, nil)
}

// Metrics retrieves the daemon's counters.
func (c *Client) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	if err := c.do(ctx, control.Request{Action: control.ActionMetrics}, &m); err != nil {
		return Metrics{}, err
	}
	return m, nil
}

// Events retrieves the most recently handled windowing events.
func (c *Client) Events(ctx context.Context) ([]EventRecord, error) {
	var events []EventRecord
	if err := c.do(ctx, control.Request{Action: control.ActionEvents}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) do(ctx context.Context, req control.Request, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("dial control socket: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	var resp control.Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.Status != control.StatusOK {
		if resp.Error == "" {
			resp.Error = "unknown control error"
		}
		return errors.New(resp.Error)
	}
	if out == nil || resp.Data == nil {
		return nil
	}
	data, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
