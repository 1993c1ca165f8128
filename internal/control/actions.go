package control

import (
	"fmt"
	"strings"

	"github.com/hyprpal/stackwm/internal/layout"
	"github.com/hyprpal/stackwm/internal/stackset"
	"github.com/hyprpal/stackwm/internal/workspace"
)

func paramString(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

// paramInt accepts JSON numbers, which decode as float64.
func paramInt(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// workspaceParam resolves the "workspace" selector. "nsp" names the
// scratchpad stack when allowNSP is set.
func workspaceParam(ss *stackset.StackSet, params map[string]any, allowNSP bool) (int, error) {
	raw := paramString(params, "workspace")
	if allowNSP && strings.EqualFold(raw, "nsp") {
		return ss.NSP(), nil
	}
	sel, err := stackset.ParseSelector(raw)
	if err != nil {
		return 0, err
	}
	return sel.Resolve(ss), nil
}

func placementParam(params map[string]any, def layout.Placement) (layout.Placement, error) {
	raw := paramString(params, "placement")
	if raw == "" {
		return def, nil
	}
	return layout.ParsePlacement(raw)
}

// runClientAction applies a single-client action to the client picked by
// the "selector" parameter, relative to the focused client.
func runClientAction(ctl *workspace.Controller, params map[string]any) error {
	ss := ctl.StackSet()
	ref := ss.CurrClient(ss.Curr())
	sel := workspace.ParseSelector(paramString(params, "selector"))
	switch name := paramString(params, "action"); name {
	case "focus":
		return ctl.ClientFocus(ref, sel)
	case "swap":
		return ctl.ClientSwap(ref, sel)
	case "send":
		ws, err := workspaceParam(ss, params, true)
		if err != nil {
			return err
		}
		return ctl.ClientSend(ref, sel, ws)
	case "kill":
		return ctl.ClientKill(ref, sel)
	case "minimize":
		return ctl.ClientMinimize(ref, sel)
	case "tile":
		return ctl.ClientTile(ref, sel)
	case "free", "toggle-free":
		p, err := placementParam(params, layout.PlacementCenter)
		if err != nil {
			return err
		}
		if name == "free" {
			return ctl.ClientFree(ref, sel, p)
		}
		return ctl.ClientToggleFree(ref, sel, p)
	case "normal":
		return ctl.ClientNormal(ref, sel)
	case "fullscreen":
		return ctl.ClientFullscreen(ref, sel)
	case "toggle-fullscreen":
		return ctl.ClientToggleFullscreen(ref, sel)
	case "move":
		return ctl.ClientMove(ref, sel, paramInt(params, "dx"), paramInt(params, "dy"))
	case "resize":
		return ctl.ClientResize(ref, sel, paramInt(params, "dx"), paramInt(params, "dy"))
	default:
		return fmt.Errorf("unknown client action %q", name)
	}
}

// runWorkspaceAction applies a bulk action to the selected workspace.
func runWorkspaceAction(ctl *workspace.Controller, params map[string]any) error {
	ws, err := workspaceParam(ctl.StackSet(), params, false)
	if err != nil {
		return err
	}
	switch name := paramString(params, "action"); name {
	case "tile":
		return ctl.Tile(ws)
	case "free":
		p, err := placementParam(params, layout.PlacementDefault)
		if err != nil {
			return err
		}
		return ctl.Free(ws, p)
	case "minimize":
		return ctl.Minimize(ws)
	case "restore":
		return ctl.RestoreLastMinimized(ws)
	default:
		return fmt.Errorf("unknown workspace action %q", name)
	}
}
