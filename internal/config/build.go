package config

import (
	"fmt"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
)

// BuildWorkspaces compiles the workspace section into stack configuration.
func (c *Config) BuildWorkspaces() ([]stackset.Workspace, error) {
	colors, err := c.Borders.Colors.pixels()
	if err != nil {
		return nil, err
	}
	out := make([]stackset.Workspace, 0, len(c.Workspaces))
	for _, ws := range c.Workspaces {
		layouts, err := c.buildLayouts(ws.Layouts, colors)
		if err != nil {
			return nil, fmt.Errorf("workspace %q: %w", ws.Name, err)
		}
		togLayouts, err := c.buildLayouts(ws.ToggleLayouts, colors)
		if err != nil {
			return nil, fmt.Errorf("workspace %q: %w", ws.Name, err)
		}
		out = append(out, stackset.Workspace{
			Name:       ws.Name,
			Gaps:       layout.Gaps(ws.Gaps),
			Layouts:    layouts,
			TogLayouts: togLayouts,
		})
	}
	return out, nil
}

func (c *Config) buildLayouts(cfgs []LayoutConfig, colors layout.Colors) ([]layout.Layout, error) {
	out := make([]layout.Layout, 0, len(cfgs))
	for i, lc := range cfgs {
		kind, err := layout.ParseKind(lc.Arrange)
		if err != nil {
			return nil, fmt.Errorf("layout %d: %w", i, err)
		}
		border, err := layout.ParseBorderStyle(lc.Border)
		if err != nil {
			return nil, fmt.Errorf("layout %d: %w", i, err)
		}
		l := layout.Layout{
			Name:        lc.Name,
			Kind:        kind,
			Border:      border,
			BorderWidth: c.Borders.Width,
			BorderGap:   c.Borders.Gap,
			Colors:      colors,
			Region:      layout.FullRegion,
			Mod:         lc.Mod,
			FollowMouse: lc.FollowMouse,
			Settings:    append([]float64(nil), lc.Settings...),
		}
		if l.Name == "" {
			l.Name = kind.String()
		}
		if lc.BorderWidth != nil {
			l.BorderWidth = *lc.BorderWidth
		}
		if lc.BorderGap != nil {
			l.BorderGap = *lc.BorderGap
		}
		if len(lc.Region) == 4 {
			copy(l.Region[:], lc.Region)
		}
		out = append(out, l)
	}
	return out, nil
}

func (cc ColorsConfig) pixels() (layout.Colors, error) {
	var out layout.Colors
	for _, f := range []struct {
		dst *uint32
		src string
	}{
		{&out.Normal, cc.Normal},
		{&out.Current, cc.Current},
		{&out.Previous, cc.Previous},
		{&out.Free, cc.Free},
		{&out.Urgent, cc.Urgent},
	} {
		px, err := ParseColor(f.src)
		if err != nil {
			return layout.Colors{}, err
		}
		*f.dst = px
	}
	return out, nil
}

// MonitorRects returns the configured monitor overrides.
func (c *Config) MonitorRects() []layout.Rect {
	out := make([]layout.Rect, 0, len(c.Monitors))
	for _, m := range c.Monitors {
		out = append(out, layout.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height})
	}
	return out
}
