package engine

import (
	"context"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
	"github.com/hyprpal/stackwm/internal/util"
)

// EventKind names a windowing event the engine reacts to.
type EventKind string

const (
	EventMap        EventKind = "map"
	EventDestroy    EventKind = "destroy"
	EventEnter      EventKind = "enter"
	EventTitle      EventKind = "title"
	EventUrgent     EventKind = "urgent"
	EventFullscreen EventKind = "fullscreen"
	EventActivate   EventKind = "activate"
	EventConfigure  EventKind = "configure"
)

// Event is a windowing event decoded by the protocol adapter.
type Event struct {
	Kind   EventKind
	Window state.Window
	Attrs  state.Attributes
	Title  string
	// Flag carries the urgency or fullscreen state of the event.
	Flag bool
	// Toggle asks to flip the fullscreen state, ignoring Flag.
	Toggle bool
	// Geometry is the requested rectangle of a configure request.
	Geometry layout.Rect
}

// SubscribeFunc starts the event stream. The channel is closed when the
// connection ends.
type SubscribeFunc func(ctx context.Context, logger *util.Logger) (<-chan Event, error)

// Passthrough honours requests of windows that are not managed.
type Passthrough interface {
	ConfigureUnmanaged(w state.Window, r layout.Rect) error
}
