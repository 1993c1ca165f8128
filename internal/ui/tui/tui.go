package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyprpal/stackwm/internal/control/client"
	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/state"
)

const (
	defaultRefresh = 500 * time.Millisecond
	titleWidth     = 40
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hiddenStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Source provides the state rendered on every refresh.
type Source interface {
	State(ctx context.Context) (*client.State, error)
}

// Renderer periodically polls the daemon and renders a textual dashboard.
type Renderer struct {
	Source  Source
	Writer  io.Writer
	Refresh time.Duration
	now     func() time.Time
}

// New returns a renderer configured with sensible defaults.
func New(src Source, w io.Writer) *Renderer {
	return &Renderer{Source: src, Writer: w, Refresh: defaultRefresh, now: time.Now}
}

// Run starts the render loop until the context is cancelled.
func (r *Renderer) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Writer == nil {
		r.Writer = os.Stdout
	}
	if r.Source == nil {
		return fmt.Errorf("tui renderer requires a control client")
	}
	if r.now == nil {
		r.now = time.Now
	}

	refresh := r.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	fmt.Fprint(r.Writer, "\033[?25l")
	defer fmt.Fprint(r.Writer, "\033[?25h")

	r.render(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.render(ctx)
		}
	}
}

func (r *Renderer) render(ctx context.Context) {
	snap, err := r.Source.State(ctx)
	var buf bytes.Buffer
	buf.WriteString("\033[H\033[2J")
	buf.WriteString(Frame(snap, err, r.now()))
	fmt.Fprint(r.Writer, buf.String())
}

// Frame renders one dashboard frame.
func Frame(snap *state.Snapshot, err error, now time.Time) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("stackwm status (Ctrl+C to exit)"))
	b.WriteByte('\n')
	b.WriteString(now.Format(time.RFC1123))
	b.WriteString("\n\n")
	if err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", err)))
		b.WriteByte('\n')
		return b.String()
	}
	if snap == nil {
		b.WriteString("Waiting for daemon state...\n")
		return b.String()
	}
	b.WriteString(renderWorkspaces(snap))
	b.WriteString(renderClients(snap))
	return b.String()
}

func renderWorkspaces(snap *state.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Workspaces:"))
	b.WriteByte('\n')
	var tb strings.Builder
	tw := tabwriter.NewWriter(&tb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tMonitor\tLayout\tClients\tMinimized")
	for _, ws := range snap.Workspaces {
		id := fmt.Sprintf("%d", ws.Index)
		if ws.Index == snap.Current {
			id += "*"
		}
		monitor := "-"
		if ws.Visible {
			monitor = fmt.Sprintf("%d", ws.Monitor)
		}
		lay := ws.Layout
		if ws.Toggled {
			lay += " (toggled)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", id, ws.Name, monitor, lay, len(ws.Clients), len(ws.Minimized))
	}
	tw.Flush()
	lines := strings.Split(strings.TrimRight(tb.String(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
		case i-1 == snap.Current:
			line = currentStyle.Render(line)
		case !snap.Workspaces[i-1].Visible:
			line = hiddenStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if n := len(snap.Scratchpad.Clients); n > 0 {
		fmt.Fprintf(&b, "Scratchpad: %d hidden\n", n)
	}
	b.WriteByte('\n')
	return b.String()
}

func renderClients(snap *state.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Clients:"))
	b.WriteByte('\n')
	active := snap.ActiveClient()
	var tb strings.Builder
	tw := tabwriter.NewWriter(&tb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Window\tClass\tTitle\tWorkspace\tGeometry\tState")
	count := 0
	for _, ws := range snap.Workspaces {
		for _, cl := range ws.Clients {
			count++
			win := fmt.Sprintf("0x%x", uint32(cl.Win))
			if active != nil && active.Win == cl.Win {
				win = "*" + win
			}
			className := cl.Class
			if className == "" {
				className = "(unknown)"
			}
			title := cl.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", win, className, truncate(title, titleWidth),
				ws.Name, formatRect(cl.FloatRegion), clientState(cl))
		}
	}
	tw.Flush()
	if count == 0 {
		b.WriteString("  (none)\n\n")
		return b.String()
	}
	b.WriteString(tb.String())
	b.WriteByte('\n')
	return b.String()
}

func formatRect(rect layout.Rect) string {
	return fmt.Sprintf("%dx%d @ %d,%d", rect.Width, rect.Height, rect.X, rect.Y)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func clientState(cl state.Client) string {
	var parts []string
	switch {
	case cl.Dock.Docked():
		parts = append(parts, "docked "+cl.Dock.Pos.String())
	case cl.IsFree():
		parts = append(parts, "free "+cl.Free.String())
	default:
		parts = append(parts, "tiled")
	}
	if cl.Fullscreen {
		parts = append(parts, "fullscreen")
	}
	if cl.Urgent {
		parts = append(parts, "urgent")
	}
	if cl.NSP {
		parts = append(parts, "scratchpad")
	}
	return strings.Join(parts, ", ")
}
