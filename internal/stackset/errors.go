package stackset

import "errors"

var (
	// ErrNoLayouts is returned when a workspace is configured without any layout.
	ErrNoLayouts = errors.New("workspace has no layouts")
	// ErrNoWorkspaces is returned when the configuration lists no workspaces.
	ErrNoWorkspaces = errors.New("no workspaces configured")
	// ErrNoMonitors is returned when no monitor area is known.
	ErrNoMonitors = errors.New("no monitors available")
)
