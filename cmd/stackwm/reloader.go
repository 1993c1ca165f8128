package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyprpal/stackwm/internal/config"
	"github.com/hyprpal/stackwm/internal/engine"
	"github.com/hyprpal/stackwm/internal/rules"
	"github.com/hyprpal/stackwm/internal/util"
)

// configReloader swaps the rule set on config changes. Workspace, layout and
// border settings are fixed at startup.
type configReloader struct {
	path           string
	logger         *util.Logger
	engine         *engine.Engine
	lastConfig     *config.Config
	lastSerialized []byte
}

func newConfigReloader(path string, logger *util.Logger, eng *engine.Engine, cfg *config.Config, serialized []byte) *configReloader {
	return &configReloader{
		path:           path,
		logger:         logger,
		engine:         eng,
		lastConfig:     cfg,
		lastSerialized: append([]byte(nil), serialized...),
	}
}

func (r *configReloader) Reload(ctx context.Context, reason string) error {
	r.logger.Infof("%s, reloading config", reason)
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.Parse(raw, filepath.Ext(r.path))
	if err != nil {
		r.logDiff(raw)
		return err
	}
	list, err := rules.BuildRules(cfg)
	if err != nil {
		r.logDiff(raw)
		return fmt.Errorf("compile rules: %w", err)
	}
	if err := r.engine.ReloadRules(ctx, list); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if r.lastConfig != nil && staticChanged(r.lastConfig, cfg) {
		r.logger.Warnf("workspace, monitor and border changes apply after restart:\n%s", config.Diff(withoutRules(r.lastConfig), withoutRules(cfg)))
	}

	r.lastConfig = cfg
	r.lastSerialized = append([]byte(nil), raw...)
	return nil
}

func (r *configReloader) logDiff(current []byte) {
	diff := config.DiffSerialized(r.lastSerialized, current)
	if diff == "" {
		r.logger.Warnf("config change rejected; unable to compute diff vs last valid config")
		return
	}
	r.logger.Warnf("config change rejected; diff vs last valid config:\n%s", diff)
}

func withoutRules(cfg *config.Config) *config.Config {
	out := *cfg
	out.Rules = nil
	return &out
}

func staticChanged(previous, current *config.Config) bool {
	return config.Diff(withoutRules(previous), withoutRules(current)) != ""
}
