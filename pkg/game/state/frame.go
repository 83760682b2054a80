package state

import (
	"github.com/leonelquinteros/gotext"

	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/engine/input"
	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/editor"
)

// Frame is an immutable copy of everything a renderer draws. It holds no
// references into live state.
type Frame struct {
	Snapshot world.Snapshot
	Geometry geometry.Geometry
	Speed    int

	Editing bool
	Mode    editor.Mode
	Hover   editor.Preview
	Legend  bool

	// Message is empty once the status line has expired
	Message      string
	MessageAlert bool
}

// Frame captures the world and UI state after the last Tick
func (s *Session) Frame() Frame {
	f := Frame{
		Snapshot: s.state.Snapshot(),
		Geometry: s.geom,
		Speed:    s.local.Speed(),
		Editing:  s.editor != nil,
		Legend:   s.legend,
	}
	if s.editor != nil {
		f.Mode = s.editor.Mode()
		f.Hover = s.editor.Hover()
	}
	if s.message.Text != "" && !s.now.After(s.message.Until) {
		f.Message = s.message.Text
		f.MessageAlert = s.message.Alert
	}
	return f
}

// StatusLine is the editor's bottom bar: the mode, the hover target and,
// while a button is held, what releasing it over the target would do.
func (f Frame) StatusLine() string {
	line := gotext.Get("Current mode: %s", modeLabel(f.Mode))
	if !f.Hover.Valid() {
		return line
	}
	prefix := ""
	switch f.Hover.Kind {
	case editor.TargetEastWall:
		prefix = "V"
	case editor.TargetNorthWall:
		prefix = "H"
	}
	line += " | " + gotext.Get("Hover %s", prefix+f.Hover.Coord.String())
	if f.Hover.Action != editor.HoverNone {
		line += " | " + f.Hover.Action.String()
	}
	return line
}

// LegendTitle heads the editor help box
func LegendTitle() string {
	return gotext.Get("World Maker Controls (%s to toggle)", input.KeyName(input.ActionToggleLegend))
}

// LegendLines are the editor help box lines, naming the keys currently bound
func LegendLines() []string {
	key := input.KeyName
	return []string{
		gotext.Get("%s (default): left/right click add/remove single beepers", key(input.ActionModeSingleBeeper)),
		gotext.Get("%s: left add ∞ beeper, right remove all beepers", key(input.ActionModeInfiniteBeeper)),
		gotext.Get("%s: left/right click add/remove vertical walls", key(input.ActionModeVerticalWall)),
		gotext.Get("%s: left/right click add/remove horizontal walls", key(input.ActionModeHorizontalWall)),
		gotext.Get("%s: open world (filename entered in terminal)   %s: save world",
			key(input.ActionOpenWorld), key(input.ActionSaveWorld)),
	}
}
