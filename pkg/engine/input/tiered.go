package input

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent of the person at the window.
type Action int

const (
	ActionNone Action = iota

	// Window
	ActionQuit
	ActionSlower
	ActionFaster
	ActionDumpMap
	ActionScreenshot

	// Editor
	ActionModeSingleBeeper
	ActionModeInfiniteBeeper
	ActionModeVerticalWall
	ActionModeHorizontalWall
	ActionToggleLegend
	ActionOpenWorld
	ActionSaveWorld
)

// Intent is the top layer: what the user wants done.
type Intent struct {
	Action Action
}

// RawInput is emitted directly from an input device.
// Code is a device-specific identifier (e.g. "b", "escape", "f9").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is a RawInput after key-repeat suppression. Ebiten's
// inpututil and line-buffered terminals already report each press once.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions. Multiple codes may point to the same
// Action; the long names are what the text frontend accepts.
var bindings = map[string]Action{
	"escape": ActionQuit,
	"quit":   ActionQuit,

	"[":      ActionSlower,
	"slower": ActionSlower,
	"]":      ActionFaster,
	"faster": ActionFaster,

	"f9":         ActionDumpMap,
	"dump":       ActionDumpMap,
	"f10":        ActionScreenshot,
	"screenshot": ActionScreenshot,

	"b":          ActionModeSingleBeeper,
	"beepers":    ActionModeSingleBeeper,
	"g":          ActionModeInfiniteBeeper,
	"infinite":   ActionModeInfiniteBeeper,
	"v":          ActionModeVerticalWall,
	"vertical":   ActionModeVerticalWall,
	"h":          ActionModeHorizontalWall,
	"horizontal": ActionModeHorizontalWall,

	"x":      ActionToggleLegend,
	"legend": ActionToggleLegend,
	"o":      ActionOpenWorld,
	"open":   ActionOpenWorld,
	"s":      ActionSaveWorld,
	"save":   ActionSaveWorld,
}

// MapToIntent applies the current bindings to a debounced input.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// IsEditorAction reports whether a only makes sense in the world editor
func IsEditorAction(a Action) bool {
	return a >= ActionModeSingleBeeper && a <= ActionSaveWorld
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionQuit:
		return "Quit"
	case ActionSlower:
		return "Slower"
	case ActionFaster:
		return "Faster"
	case ActionDumpMap:
		return "Dump Map"
	case ActionScreenshot:
		return "Screenshot"
	case ActionModeSingleBeeper:
		return "Single Beepers"
	case ActionModeInfiniteBeeper:
		return "Infinite Beepers"
	case ActionModeVerticalWall:
		return "Vertical Walls"
	case ActionModeHorizontalWall:
		return "Horizontal Walls"
	case ActionToggleLegend:
		return "Toggle Legend"
	case ActionOpenWorld:
		return "Open World"
	case ActionSaveWorld:
		return "Save World"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single
// code. Escape always quits.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if c == "escape" {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && code != "escape" {
		bindings[code] = action
	}
}

// KeyName is the shortest code bound to action, the one worth showing in
// help text. It is "" when nothing is bound.
func KeyName(action Action) string {
	codes := GetBindingsByAction()[action]
	name := ""
	for _, c := range codes {
		if name == "" || len(c) < len(name) {
			name = c
		}
	}
	return name
}

// ParseAction finds an action by its ActionName, case-insensitively, with
// underscores standing for spaces ("dump_map", "toggle_legend").
func ParseAction(name string) (Action, bool) {
	want := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", " "))
	for a := ActionQuit; a <= ActionSaveWorld; a++ {
		if strings.ToLower(ActionName(a)) == want {
			return a, true
		}
	}
	return ActionNone, false
}

// Rebind gives each named action a single key code, replacing its other
// bindings. Names are applied in sorted order; an unknown name fails before
// anything is changed.
func Rebind(keys map[string]string) error {
	names := make([]string, 0, len(keys))
	for name := range keys {
		if _, ok := ParseAction(name); !ok {
			return fmt.Errorf("unknown action %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		action, _ := ParseAction(name)
		SetSingleBinding(action, strings.ToLower(strings.TrimSpace(keys[name])))
	}
	return nil
}
