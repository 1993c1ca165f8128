package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hyprpal/stackwm/internal/config"
	"github.com/hyprpal/stackwm/internal/control"
	"github.com/hyprpal/stackwm/internal/engine"
	"github.com/hyprpal/stackwm/internal/metrics"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/util"
	"github.com/hyprpal/stackwm/internal/workspace"
	"github.com/hyprpal/stackwm/internal/x11"
)

const wmName = "stackwm"

type options struct {
	configPath string
	logLevel   string
	socket     string
	metrics    bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{configPath: defaultConfigPath(), logLevel: "info"}
	cmd := &cobra.Command{
		Use:          wmName,
		Short:        "Tiling window manager for X11",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", opts.configPath, "path to YAML or TOML config")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug|info|warn|error)")
	flags.StringVar(&opts.socket, "socket", "", "control socket path")
	flags.BoolVar(&opts.metrics, "metrics", true, "collect rule and event counters")
	return cmd
}

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", wmName, "config.yaml")
}

// loadConfig falls back to the built-in defaults when path does not exist.
func loadConfig(path string, logger *util.Logger) (*config.Config, []byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("no config at %s, using defaults", path)
		return config.Default(), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.Parse(raw, filepath.Ext(path))
	if err != nil {
		return nil, nil, err
	}
	return cfg, raw, nil
}

func run(ctx context.Context, opts options) error {
	logger := util.NewLogger(util.ParseLogLevel(opts.logLevel))

	cfgPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfgPath = filepath.Clean(cfgPath)
	cfg, raw, err := loadConfig(cfgPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	workspaces, err := cfg.BuildWorkspaces()
	if err != nil {
		return fmt.Errorf("build workspaces: %w", err)
	}
	ruleList, err := rules.BuildRules(cfg)
	if err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}

	conn, err := x11.Dial(wmName, cfg.Buttons, logger.With("x11"))
	if err != nil {
		return err
	}
	defer conn.Close()

	monitors := cfg.MonitorRects()
	if len(monitors) == 0 {
		monitors = conn.Monitors()
	}
	ss, err := stackset.New(workspaces, monitors)
	if err != nil {
		return fmt.Errorf("create workspaces: %w", err)
	}
	logger.Infof("managing %d workspaces on %d monitor(s)", ss.Size(), ss.Monitors())

	collector := metrics.NewCollector(opts.metrics)
	ruleEngine := rules.NewEngine(ruleList, conn, logger.With("rules"), collector)
	ctl := workspace.New(ss, ruleEngine, conn, logger.With("workspace"))
	eng := engine.New(ctl, conn.Subscribe, conn, logger, collector)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloader := newConfigReloader(cfgPath, logger, eng, cfg, raw)
	reload := func(reason string) error {
		return reloader.Reload(ctx, reason)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		logger.Warnf("unable to watch config dir: %v", err)
	}
	reloadRequests := make(chan string, 1)
	go watchConfig(logger, watcher, cfgPath, reloadRequests)

	ctrlSrv, err := control.NewServer(eng, collector, logger.With("control"), opts.socket, reload)
	if err != nil {
		return fmt.Errorf("start control server: %w", err)
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)

	errs := make(chan error, 2)
	go func() {
		errs <- eng.Run(ctx)
	}()
	go func() {
		if err := ctrlSrv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("control server stopped: %v", err)
		}
	}()

	for {
		select {
		case err := <-errs:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("engine exited: %w", err)
			}
			logger.Infof("engine stopped")
			return nil
		case reason := <-reloadRequests:
			if err := reload(reason); err != nil {
				logger.Errorf("reload failed: %v", err)
			}
		case <-sighup:
			if err := reload("received SIGHUP"); err != nil {
				logger.Errorf("reload failed: %v", err)
			}
		}
	}
}

func watchConfig(logger *util.Logger, watcher *fsnotify.Watcher, target string, reloadRequests chan<- string) {
	const debounceWindow = 250 * time.Millisecond
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timerCh
				}
				timer.Reset(debounceWindow)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			select {
			case reloadRequests <- "config file updated":
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("config watcher error: %v", err)
		}
	}
}
