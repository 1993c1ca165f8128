package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Borders    Borders           `yaml:"borders" toml:"borders"`
	Monitors   []MonitorConfig   `yaml:"monitors" toml:"monitors"`
	Workspaces []WorkspaceConfig `yaml:"workspaces" toml:"workspaces"`
	Rules      []RuleConfig      `yaml:"rules" toml:"rules"`
	Buttons    []uint8           `yaml:"buttons" toml:"buttons"`
}

// Borders are the default border styling shared by every layout.
type Borders struct {
	Width  int          `yaml:"width" toml:"width"`
	Gap    int          `yaml:"gap" toml:"gap"`
	Colors ColorsConfig `yaml:"colors" toml:"colors"`
}

// ColorsConfig holds border colours as #rrggbb strings.
type ColorsConfig struct {
	Normal   string `yaml:"normal" toml:"normal"`
	Current  string `yaml:"current" toml:"current"`
	Previous string `yaml:"previous" toml:"previous"`
	Free     string `yaml:"free" toml:"free"`
	Urgent   string `yaml:"urgent" toml:"urgent"`
}

// MonitorConfig overrides the monitor areas reported by the display server.
type MonitorConfig struct {
	X      int `yaml:"x" toml:"x"`
	Y      int `yaml:"y" toml:"y"`
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// Gaps are per-edge margins removed from the monitor area of a workspace.
type Gaps struct {
	Up    int `yaml:"up" toml:"up"`
	Down  int `yaml:"down" toml:"down"`
	Left  int `yaml:"left" toml:"left"`
	Right int `yaml:"right" toml:"right"`
}

// WorkspaceConfig describes one workspace and its layout sets.
type WorkspaceConfig struct {
	Name          string         `yaml:"name" toml:"name"`
	Gaps          Gaps           `yaml:"gaps" toml:"gaps"`
	Layouts       []LayoutConfig `yaml:"layouts" toml:"layouts"`
	ToggleLayouts []LayoutConfig `yaml:"toggleLayouts" toml:"toggleLayouts"`
}

// LayoutConfig describes a single layout slot.
type LayoutConfig struct {
	Name        string    `yaml:"name" toml:"name"`
	Arrange     string    `yaml:"arrange" toml:"arrange"`
	Border      string    `yaml:"border" toml:"border"`
	BorderWidth *int      `yaml:"borderWidth" toml:"borderWidth"`
	BorderGap   *int      `yaml:"borderGap" toml:"borderGap"`
	Region      []float64 `yaml:"region" toml:"region"`
	Mod         uint16    `yaml:"mod" toml:"mod"`
	FollowMouse bool      `yaml:"followMouse" toml:"followMouse"`
	Settings    []float64 `yaml:"settings" toml:"settings"`
}

// RuleConfig classifies new windows. Class, Instance and Title are exact
// matches; empty predicates are ignored.
type RuleConfig struct {
	Name       string     `yaml:"name" toml:"name"`
	Class      string     `yaml:"class" toml:"class"`
	Instance   string     `yaml:"instance" toml:"instance"`
	Title      string     `yaml:"title" toml:"title"`
	Workspace  string     `yaml:"workspace" toml:"workspace"`
	Fullscreen bool       `yaml:"fullscreen" toml:"fullscreen"`
	Free       string     `yaml:"free" toml:"free"`
	Dock       DockConfig `yaml:"dock" toml:"dock"`
	Follow     bool       `yaml:"follow" toml:"follow"`
}

// DockConfig pins a client to a screen edge.
type DockConfig struct {
	Position string  `yaml:"position" toml:"position"`
	Size     float64 `yaml:"size" toml:"size"`
}

const (
	defaultBorderWidth = 2
	defaultWorkspaces  = 10
)

var defaultColors = ColorsConfig{
	Normal:   "#1c1c1c",
	Current:  "#b5b3b3",
	Previous: "#444444",
	Free:     "#f7a16e",
	Urgent:   "#66ff66",
}

// Load reads and validates a configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data using the format implied by ext.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Borders.Width == 0 {
		c.Borders.Width = defaultBorderWidth
	}
	fillColor(&c.Borders.Colors.Normal, defaultColors.Normal)
	fillColor(&c.Borders.Colors.Current, defaultColors.Current)
	fillColor(&c.Borders.Colors.Previous, defaultColors.Previous)
	fillColor(&c.Borders.Colors.Free, defaultColors.Free)
	fillColor(&c.Borders.Colors.Urgent, defaultColors.Urgent)
	if len(c.Workspaces) == 0 {
		for i := 1; i <= defaultWorkspaces; i++ {
			c.Workspaces = append(c.Workspaces, WorkspaceConfig{Name: strconv.Itoa(i)})
		}
	}
	for i := range c.Workspaces {
		ws := &c.Workspaces[i]
		if ws.Name == "" {
			ws.Name = strconv.Itoa(i + 1)
		}
		if len(ws.Layouts) == 0 {
			ws.Layouts = []LayoutConfig{{Arrange: "tile"}, {Arrange: "mirror"}, {Arrange: "grid"}}
			if len(ws.ToggleLayouts) == 0 {
				ws.ToggleLayouts = []LayoutConfig{{Arrange: "monocle", Border: "none"}, {Arrange: "float"}}
			}
		}
	}
	if len(c.Buttons) == 0 {
		c.Buttons = []uint8{1, 2, 3}
	}
}

func fillColor(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// Validate performs basic sanity checks.
func (c *Config) Validate() error {
	if c.Borders.Width < 0 {
		return fmt.Errorf("borders.width cannot be negative")
	}
	if c.Borders.Gap < 0 {
		return fmt.Errorf("borders.gap cannot be negative")
	}
	for name, value := range map[string]string{
		"normal":   c.Borders.Colors.Normal,
		"current":  c.Borders.Colors.Current,
		"previous": c.Borders.Colors.Previous,
		"free":     c.Borders.Colors.Free,
		"urgent":   c.Borders.Colors.Urgent,
	} {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("borders.colors.%s: %w", name, err)
		}
	}
	for i, m := range c.Monitors {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("monitor %d must have a positive size", i)
		}
	}
	if len(c.Workspaces) == 0 {
		return fmt.Errorf("config must define at least one workspace")
	}
	names := map[string]struct{}{}
	for i, ws := range c.Workspaces {
		if _, exists := names[ws.Name]; exists {
			return fmt.Errorf("duplicate workspace name %q", ws.Name)
		}
		names[ws.Name] = struct{}{}
		if len(ws.Layouts) == 0 {
			return fmt.Errorf("workspace %q must define layouts", ws.Name)
		}
		if ws.Gaps.Up < 0 || ws.Gaps.Down < 0 || ws.Gaps.Left < 0 || ws.Gaps.Right < 0 {
			return fmt.Errorf("workspace %q: gaps cannot be negative", ws.Name)
		}
		for j, l := range append(append([]LayoutConfig(nil), ws.Layouts...), ws.ToggleLayouts...) {
			if err := l.Validate(); err != nil {
				return fmt.Errorf("workspace %d (%s) layout %d: %w", i, ws.Name, j, err)
			}
		}
	}
	if _, err := c.BuildWorkspaces(); err != nil {
		return err
	}
	for i, r := range c.Rules {
		if r.Class == "" && r.Instance == "" && r.Title == "" {
			return fmt.Errorf("rule %d (%s) must match on class, instance or title", i, r.Name)
		}
		if r.Dock.Size < 0 || r.Dock.Size > 1 {
			return fmt.Errorf("rule %d (%s): dock.size must be within [0,1]", i, r.Name)
		}
	}
	return nil
}

// Validate checks the layout region and border overrides.
func (l LayoutConfig) Validate() error {
	if len(l.Region) != 0 && len(l.Region) != 4 {
		return fmt.Errorf("region must have 4 values, got %d", len(l.Region))
	}
	for _, v := range l.Region {
		if v < 0 || v > 1 {
			return fmt.Errorf("region values must be within [0,1]")
		}
	}
	if l.BorderWidth != nil && *l.BorderWidth < 0 {
		return fmt.Errorf("borderWidth cannot be negative")
	}
	if l.BorderGap != nil && *l.BorderGap < 0 {
		return fmt.Errorf("borderGap cannot be negative")
	}
	return nil
}

// ParseColor converts #rrggbb into a pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q", s)
	}
	return uint32(v), nil
}
