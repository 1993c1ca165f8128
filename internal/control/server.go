package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/hyprpal/stackwm/internal/engine"
	"github.com/hyprpal/stackwm/internal/metrics"
	"github.com/hyprpal/stackwm/internal/util"
	"github.com/hyprpal/stackwm/internal/workspace"
)

// Server hosts the stackwm control socket and serves requests.
type Server struct {
	engine     *engine.Engine
	metrics    *metrics.Collector
	logger     *util.Logger
	reload     func(reason string) error
	socketPath string

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a new control server. An empty socketPath selects
// DefaultSocketPath.
func NewServer(eng *engine.Engine, m *metrics.Collector, logger *util.Logger, socketPath string, reload func(reason string) error) (*Server, error) {
	if socketPath == "" {
		var err error
		if socketPath, err = DefaultSocketPath(); err != nil {
			return nil, err
		}
	}
	return &Server{
		engine:     eng,
		metrics:    m,
		logger:     logger,
		reload:     reload,
		socketPath: socketPath,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Serve listens on the control socket until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.prepareSocket(); err != nil {
		return err
	}
	s.logger.Infof("control server listening on %s", s.socketPath)
	defer s.cleanup()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if s.listener != nil {
			s.listener.Close()
		}
		s.mu.Unlock()
	}()

	for {
		conn, err := s.accept(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			s.logger.Errorf("control accept error: %v", err)
			continue
		}
		go s.handle(ctx, conn)
	}
}

func (s *Server) accept(ctx context.Context) (net.Conn, error) {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return nil, context.Canceled
	}
	conn, err := listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return conn, nil
}

func (s *Server) prepareSocket() error {
	dir := filepath.Dir(s.socketPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create control dir: %w", err)
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on control socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("chmod control socket: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	return nil
}

func (s *Server) cleanup() {
	s.mu.Lock()
	listener := s.listener
	s.listener = nil
	s.mu.Unlock()
	if listener != nil {
		listener.Close()
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warnf("remove control socket: %v", err)
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	dec := json.NewDecoder(conn)
	var req Request
	if err := dec.Decode(&req); err != nil {
		s.writeError(conn, fmt.Errorf("decode request: %w", err))
		return
	}
	s.logger.Debugf("control request %s", req.Action)
	switch req.Action {
	case ActionState:
		snap, err := s.engine.Snapshot(ctx)
		s.reply(conn, snap, err)
	case ActionWorkspaceGet:
		var status WorkspaceStatus
		err := s.engine.Do(ctx, func(ctl *workspace.Controller) error {
			ss := ctl.StackSet()
			status = WorkspaceStatus{
				Current: ss.Curr(),
				Last:    ss.Last(),
				Name:    ss.Name(ss.Curr()),
				Layout:  ss.CurrLayout(ss.Curr()).Name,
			}
			return nil
		})
		s.reply(conn, status, err)
	case ActionWorkspaceSet:
		s.apply(ctx, conn, func(ctl *workspace.Controller) error {
			ws, err := workspaceParam(ctl.StackSet(), req.Params, false)
			if err != nil {
				return err
			}
			return ctl.Change(ws)
		})
	case ActionWorkspaceAction:
		s.apply(ctx, conn, func(ctl *workspace.Controller) error {
			return runWorkspaceAction(ctl, req.Params)
		})
	case ActionLayoutNext:
		s.apply(ctx, conn, func(ctl *workspace.Controller) error {
			ws, err := workspaceParam(ctl.StackSet(), req.Params, false)
			if err != nil {
				return err
			}
			ctl.NextLayout(ws)
			return nil
		})
	case ActionLayoutToggle:
		s.apply(ctx, conn, func(ctl *workspace.Controller) error {
			ws, err := workspaceParam(ctl.StackSet(), req.Params, false)
			if err != nil {
				return err
			}
			ctl.ToggleLayout(ws, paramInt(req.Params, "index"))
			return nil
		})
	case ActionClientAction:
		s.apply(ctx, conn, func(ctl *workspace.Controller) error {
			return runClientAction(ctl, req.Params)
		})
	case ActionNSPToggle:
		s.apply(ctx, conn, func(ctl *workspace.Controller) error {
			return ctl.ToggleNSP()
		})
	case ActionReload:
		s.handleReload(conn)
	case ActionMetrics:
		s.writeOK(conn, s.metrics.Snapshot())
	case ActionEvents:
		s.writeOK(conn, s.engine.EventHistory())
	default:
		s.writeError(conn, fmt.Errorf("unknown action %q", req.Action))
	}
}

func (s *Server) apply(ctx context.Context, conn net.Conn, fn func(*workspace.Controller) error) {
	s.reply(conn, nil, s.engine.Do(ctx, fn))
}

func (s *Server) handleReload(conn net.Conn) {
	if s.reload == nil {
		s.writeError(conn, errors.New("reload not supported"))
		return
	}
	if err := s.reload("control request"); err != nil {
		s.writeError(conn, err)
		return
	}
	s.writeOK(conn, nil)
}

func (s *Server) reply(conn net.Conn, data any, err error) {
	if err != nil {
		s.writeError(conn, err)
		return
	}
	s.writeOK(conn, data)
}

func (s *Server) writeOK(conn net.Conn, data any) {
	resp := Response{Status: StatusOK}
	if data != nil {
		resp.Data = data
	}
	_ = json.NewEncoder(conn).Encode(resp)
}

func (s *Server) writeError(conn net.Conn, err error) {
	resp := Response{Status: StatusError}
	if err != nil {
		resp.Error = err.Error()
	}
	_ = json.NewEncoder(conn).Encode(resp)
}
