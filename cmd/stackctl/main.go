package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyprpal/stackwm/internal/config"
	"github.com/hyprpal/stackwm/internal/control/client"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/ui/tui"
)

// controlClient is the subset of the control client used by the commands.
type controlClient interface {
	State(ctx context.Context) (*client.State, error)
	Workspace(ctx context.Context) (client.WorkspaceStatus, error)
	SetWorkspace(ctx context.Context, selector string) error
	WorkspaceAction(ctx context.Context, action, selector, placement string) error
	NextLayout(ctx context.Context, selector string) error
	ToggleLayout(ctx context.Context, selector string, index int) error
	Client(ctx context.Context, a client.ClientAction) error
	ToggleNSP(ctx context.Context) error
	Reload(ctx context.Context) error
	Metrics(ctx context.Context) (client.Metrics, error)
	Events(ctx context.Context) ([]client.EventRecord, error)
}

type dialFunc func(socket string) (controlClient, error)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dial := func(socket string) (controlClient, error) { return client.New(socket) }
	if err := newRootCmd(os.Stdout, os.Stderr, dial).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cli struct {
	stdout  io.Writer
	stderr  io.Writer
	dial    dialFunc
	socket  string
	timeout time.Duration
}

func newRootCmd(stdout, stderr io.Writer, dial dialFunc) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, dial: dial}
	root := &cobra.Command{
		Use:           "stackctl",
		Short:         "Control a running stackwm daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&c.socket, "socket", "", "path to stackwm control socket")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 3*time.Second, "control request timeout")

	root.AddCommand(
		c.stateCmd(),
		c.workspaceCmd(),
		c.layoutCmd(),
		c.clientCmd(),
		c.nspCmd(),
		c.reloadCmd(),
		c.metricsCmd(),
		c.eventsCmd(),
		c.watchCmd(),
		c.checkCmd(),
	)
	return root
}

// call dials the daemon and runs fn under the request timeout.
func (c *cli) call(cmd *cobra.Command, fn func(ctx context.Context, cl controlClient) error) error {
	cl, err := c.dial(c.socket)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return fn(ctx, cl)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the managed state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				st, err := cl.State(ctx)
				if err != nil {
					return err
				}
				return c.printJSON(st)
			})
		},
	}
}

func (c *cli) workspaceCmd() *cobra.Command {
	var placement string
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect or switch workspaces",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the current workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				status, err := cl.Workspace(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Current workspace: %d (%s)\n", status.Current, status.Name)
				fmt.Fprintf(c.stdout, "Layout: %s\n", status.Layout)
				fmt.Fprintf(c.stdout, "Last workspace: %d\n", status.Last)
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "set <selector>",
		Short: "Switch to a workspace (index, next, prev, last)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				if err := cl.SetWorkspace(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Switched to workspace %s\n", args[0])
				return nil
			})
		},
	})
	bulk := &cobra.Command{
		Use:   "action <tile|free|minimize|restore> [selector]",
		Short: "Apply an action to every client of a workspace",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := ""
			if len(args) > 1 {
				selector = args[1]
			}
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				return cl.WorkspaceAction(ctx, args[0], selector, placement)
			})
		},
	}
	bulk.Flags().StringVar(&placement, "placement", "", "placement used by the free action")
	cmd.AddCommand(bulk)
	return cmd
}

func (c *cli) layoutCmd() *cobra.Command {
	var selector string
	var index int
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Cycle or toggle workspace layouts",
	}
	cmd.PersistentFlags().StringVar(&selector, "workspace", "", "workspace selector (defaults to current)")
	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle an overlay layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				return cl.ToggleLayout(ctx, selector, index)
			})
		},
	}
	toggle.Flags().IntVar(&index, "index", 0, "toggle layout index")
	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Cycle to the next layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				return cl.NextLayout(ctx, selector)
			})
		},
	}, toggle)
	return cmd
}

func (c *cli) clientCmd() *cobra.Command {
	var a client.ClientAction
	cmd := &cobra.Command{
		Use:   "client <action>",
		Short: "Act on a client relative to the focused one",
		Long: `Actions: focus, swap, send, kill, minimize, tile, free, toggle-free,
normal, fullscreen, toggle-fullscreen, move, resize.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Action = args[0]
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				return cl.Client(ctx, a)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&a.Selector, "selector", "", "client selector (self, next, prev, head, last, prevSelected)")
	flags.StringVar(&a.Workspace, "workspace", "", "target workspace for send")
	flags.StringVar(&a.Placement, "placement", "", "placement for free")
	flags.IntVar(&a.DX, "dx", 0, "horizontal delta for move and resize")
	flags.IntVar(&a.DY, "dy", 0, "vertical delta for move and resize")
	return cmd
}

func (c *cli) nspCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nsp",
		Short: "Toggle the named scratchpad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				return cl.ToggleNSP(ctx)
			})
		},
	}
}

func (c *cli) reloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Trigger a live config reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				if err := cl.Reload(ctx); err != nil {
					return err
				}
				fmt.Fprintln(c.stdout, "Reload requested")
				return nil
			})
		},
	}
}

func (c *cli) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show rule and event counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				m, err := cl.Metrics(ctx)
				if err != nil {
					return err
				}
				if !m.Enabled {
					fmt.Fprintln(c.stdout, "Metrics collection is disabled")
					return nil
				}
				fmt.Fprintf(c.stdout, "Events: %d  Matched: %d  Unmatched: %d\n", m.Totals.Events, m.Totals.Matched, m.Totals.Unmatched)
				tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
				for _, r := range m.Rules {
					fmt.Fprintf(tw, "rule\t%s\t%d\n", r.Rule, r.Matched)
				}
				for _, e := range m.Events {
					fmt.Fprintf(tw, "event\t%s\t%d\n", e.Kind, e.Count)
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List recently handled windowing events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.call(cmd, func(ctx context.Context, cl controlClient) error {
				events, err := cl.Events(ctx)
				if err != nil {
					return err
				}
				if len(events) == 0 {
					fmt.Fprintln(c.stdout, "No events recorded")
					return nil
				}
				tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
				for _, ev := range events {
					status := "ok"
					if ev.Error != "" {
						status = ev.Error
					}
					fmt.Fprintf(tw, "%s\t%s\t0x%x\t%s\n", ev.Timestamp.Format(time.TimeOnly), ev.Kind, uint32(ev.Window), status)
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	var refresh time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render a live status dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.dial(c.socket)
			if err != nil {
				return fmt.Errorf("create client: %w", err)
			}
			renderer := tui.New(cl, c.stdout)
			renderer.Refresh = refresh
			if err := renderer.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&refresh, "refresh", 500*time.Millisecond, "refresh interval")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(configPath, c.stdout, c.stderr)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file")
	return cmd
}

func runCheck(path string, stdout, stderr io.Writer) error {
	if path == "" {
		return fmt.Errorf("check requires --config <path>")
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration invalid: %v\n", err)
		return fmt.Errorf("configuration validation failed")
	}
	list, err := rules.BuildRules(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration invalid: %v\n", err)
		return fmt.Errorf("configuration validation failed")
	}
	fmt.Fprintf(stdout, "Configuration OK (%d workspaces, %d rules)\n", len(cfg.Workspaces), len(list))
	return nil
}
