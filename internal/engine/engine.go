package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyprpal/stackwm/internal/metrics"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/state"
	"github.com/hyprpal/stackwm/internal/util"
	"github.com/hyprpal/stackwm/internal/workspace"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("engine stopped")

type request struct {
	fn   func(*workspace.Controller) error
	done chan error
}

// Engine serializes windowing events and control requests onto the
// controller. Run is the only goroutine touching the managed state.
type Engine struct {
	ctl         *workspace.Controller
	logger      *util.Logger
	metrics     *metrics.Collector
	passthrough Passthrough
	subscribe   SubscribeFunc

	requests chan request
	stopped  chan struct{}
	history  *eventLog
	now      func() time.Time
}

// New creates an engine driving ctl with events from subscribe.
func New(ctl *workspace.Controller, subscribe SubscribeFunc, passthrough Passthrough, logger *util.Logger, m *metrics.Collector) *Engine {
	return &Engine{
		ctl:         ctl,
		logger:      logger,
		metrics:     m,
		passthrough: passthrough,
		subscribe:   subscribe,
		requests:    make(chan request),
		stopped:     make(chan struct{}),
		history:     newEventLog(0),
		now:         time.Now,
	}
}

// Run focuses the current workspace and handles events until ctx is done, the
// event stream closes or a fatal display error occurs.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)
	events, err := e.subscribe(ctx, e.logger)
	if err != nil {
		return fmt.Errorf("subscribe events: %w", err)
	}
	defer e.release()
	if err := e.ctl.Focus(e.ctl.StackSet().Curr()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("event stream closed")
			}
			if err := e.handle(ev); err != nil {
				if workspace.IsFatal(err) {
					return err
				}
				e.logger.Errorf("%s event for 0x%x failed: %v", ev.Kind, uint32(ev.Window), err)
			}
		case req := <-e.requests:
			err := req.fn(e.ctl)
			req.done <- err
			if workspace.IsFatal(err) {
				return err
			}
		}
	}
}

// release hands every managed window back on screen before the loop stops.
func (e *Engine) release() {
	n := e.ctl.Shutdown()
	e.logger.Infof("released %d windows", n)
}

// Do runs fn on the engine goroutine and waits for its result.
func (e *Engine) Do(ctx context.Context, fn func(*workspace.Controller) error) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case e.requests <- req:
	case <-e.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReloadRules swaps the rule set used for windows mapped from now on.
func (e *Engine) ReloadRules(ctx context.Context, list []rules.Rule) error {
	return e.Do(ctx, func(ctl *workspace.Controller) error {
		ctl.Rules().SetRules(list)
		e.logger.Infof("reloaded %d rules", len(list))
		return nil
	})
}

// Snapshot copies the managed state on the engine goroutine.
func (e *Engine) Snapshot(ctx context.Context) (*state.Snapshot, error) {
	var snap *state.Snapshot
	err := e.Do(ctx, func(ctl *workspace.Controller) error {
		snap = ctl.Snapshot()
		return nil
	})
	return snap, err
}

// EventHistory returns the most recent handled events, oldest first.
func (e *Engine) EventHistory() []EventRecord {
	return e.history.snapshot()
}

func (e *Engine) handle(ev Event) error {
	e.metrics.RecordEvent(string(ev.Kind))
	err := e.apply(ev)
	rec := EventRecord{Timestamp: e.now(), Kind: ev.Kind, Window: ev.Window}
	if err != nil {
		rec.Error = err.Error()
	}
	e.history.record(rec)
	return err
}

func (e *Engine) apply(ev Event) error {
	ctl := e.ctl
	switch ev.Kind {
	case EventMap:
		return ctl.Manage(ev.Window, ev.Attrs)
	case EventDestroy:
		return ctl.Unmanage(ev.Window)
	case EventEnter:
		return ctl.FocusWindow(ev.Window)
	case EventTitle:
		ctl.UpdateTitle(ev.Window, ev.Title)
	case EventUrgent:
		ctl.SetUrgent(ev.Window, ev.Flag)
	case EventFullscreen:
		if ev.Toggle {
			return ctl.ToggleFullscreen(ev.Window)
		}
		return ctl.SetFullscreen(ev.Window, ev.Flag)
	case EventActivate:
		return ctl.Activate(ev.Window)
	case EventConfigure:
		if ctl.Reconfigure(ev.Window) || e.passthrough == nil {
			return nil
		}
		return e.passthrough.ConfigureUnmanaged(ev.Window, ev.Geometry)
	default:
		e.logger.Debugf("ignoring %s event", ev.Kind)
	}
	return nil
}
