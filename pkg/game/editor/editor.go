// Package editor turns per-frame pointer state into world edits.
//
// The controller has one of four tools selected. Each frame it finds the
// target under the pointer for that tool, applies at most one edit per
// button press, and describes what a click would do for the hover preview.
package editor

import (
	"context"

	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/engine/input"
	"karelworld/pkg/engine/world"
)

// Mode is the selected editing tool
type Mode int

const (
	ModeSingleBeeper Mode = iota
	ModeInfiniteBeeper
	ModeVerticalWall
	ModeHorizontalWall
)

// Modes lists every tool in key order
func Modes() []Mode {
	return []Mode{ModeSingleBeeper, ModeInfiniteBeeper, ModeVerticalWall, ModeHorizontalWall}
}

func (m Mode) String() string {
	switch m {
	case ModeSingleBeeper:
		return "single_beeper"
	case ModeInfiniteBeeper:
		return "infinity_beeper"
	case ModeVerticalWall:
		return "vertical_wall"
	case ModeHorizontalWall:
		return "horizontal_wall"
	default:
		return "unknown"
	}
}

// Key is the keyboard shortcut that selects the mode
func (m Mode) Key() string {
	switch m {
	case ModeSingleBeeper:
		return "b"
	case ModeInfiniteBeeper:
		return "g"
	case ModeVerticalWall:
		return "v"
	case ModeHorizontalWall:
		return "h"
	default:
		return "?"
	}
}

// TargetKind says what the hover target refers to
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCell
	TargetEastWall
	TargetNorthWall
)

// HoverAction is what a click on the hover target would do
type HoverAction int

const (
	HoverNone HoverAction = iota
	HoverAdd
	HoverRemove
	HoverNoop
	HoverAlreadyPresent
	HoverSetInfinity
	HoverClear
)

func (a HoverAction) String() string {
	switch a {
	case HoverAdd:
		return "add"
	case HoverRemove:
		return "remove"
	case HoverNoop:
		return "noop"
	case HoverAlreadyPresent:
		return "already_present"
	case HoverSetInfinity:
		return "set_infinity"
	case HoverClear:
		return "clear"
	default:
		return "none"
	}
}

// Preview is the hover state for one frame
type Preview struct {
	Kind   TargetKind
	Coord  world.Coord
	Action HoverAction
}

// Valid reports whether the pointer is over an editable target
func (p Preview) Valid() bool {
	return p.Kind != TargetNone
}

// World is the part of the world the editor reads and edits. karel.World
// satisfies it.
type World interface {
	Beeper(ctx context.Context, c world.Coord) (world.Beepers, bool, error)
	PlaceBeeper(ctx context.Context, c world.Coord, n world.Beepers) error
	DeleteBeeper(ctx context.Context, c world.Coord) error

	HasWallEast(ctx context.Context, c world.Coord) (bool, error)
	PlaceWallEast(ctx context.Context, c world.Coord) error
	RemoveWallEast(ctx context.Context, c world.Coord) error

	HasWallNorth(ctx context.Context, c world.Coord) (bool, error)
	PlaceWallNorth(ctx context.Context, c world.Coord) error
	RemoveWallNorth(ctx context.Context, c world.Coord) error
}

// Controller is the editor state machine. It must be driven from the
// goroutine that owns the world.
type Controller struct {
	world World
	mode  Mode
	edges input.Edges
	hover Preview
}

// New creates a controller in single-beeper mode
func New(w World) *Controller {
	return &Controller{world: w, mode: ModeSingleBeeper}
}

// Mode returns the selected tool
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode selects a tool. It never touches the world.
func (c *Controller) SetMode(m Mode) {
	c.mode = m
}

// Hover returns the preview computed by the last Update
func (c *Controller) Hover() Preview {
	return c.hover
}

// Update processes one frame of pointer state. Each button press applies
// exactly one edit; holding a button does not repeat it. The returned error
// comes from the world and leaves the controller usable.
func (c *Controller) Update(ctx context.Context, g geometry.Geometry, p input.Pointer) error {
	leftPressed, rightPressed := c.edges.Update(p)

	var firstErr error
	if leftPressed {
		firstErr = c.click(ctx, g, p, input.ButtonLeft)
	}
	if rightPressed {
		if err := c.click(ctx, g, p, input.ButtonRight); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	preview, err := c.Preview(ctx, g, p)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	c.hover = preview
	return firstErr
}

// target finds the thing under the pointer for the current mode
func (c *Controller) target(g geometry.Geometry, px, py float64) (TargetKind, world.Coord) {
	switch c.mode {
	case ModeSingleBeeper, ModeInfiniteBeeper:
		if cell, ok := g.NearestCell(px, py); ok {
			return TargetCell, cell
		}
	case ModeVerticalWall:
		if key, ok := g.NearestVerticalWallEdge(px, py); ok {
			return TargetEastWall, key
		}
	case ModeHorizontalWall:
		if key, ok := g.NearestHorizontalWallEdge(px, py); ok {
			return TargetNorthWall, key
		}
	}
	return TargetNone, world.Coord{}
}

// click applies the edit for one button press at the pointer
func (c *Controller) click(ctx context.Context, g geometry.Geometry, p input.Pointer, b input.Button) error {
	kind, at := c.target(g, p.X, p.Y)
	if kind == TargetNone {
		return nil
	}
	left := b == input.ButtonLeft

	switch c.mode {
	case ModeSingleBeeper:
		if left {
			return c.addSingle(ctx, at)
		}
		return c.removeSingle(ctx, at)
	case ModeInfiniteBeeper:
		if left {
			return c.world.PlaceBeeper(ctx, at, world.Infinite)
		}
		return c.world.DeleteBeeper(ctx, at)
	case ModeVerticalWall:
		if left {
			return c.world.PlaceWallEast(ctx, at)
		}
		return c.world.RemoveWallEast(ctx, at)
	case ModeHorizontalWall:
		if left {
			return c.world.PlaceWallNorth(ctx, at)
		}
		return c.world.RemoveWallNorth(ctx, at)
	}
	return nil
}

func (c *Controller) addSingle(ctx context.Context, at world.Coord) error {
	n, ok, err := c.world.Beeper(ctx, at)
	if err != nil {
		return err
	}
	if !ok {
		n = 0
	}
	if n.IsInfinite() {
		return nil
	}
	return c.world.PlaceBeeper(ctx, at, n+1)
}

func (c *Controller) removeSingle(ctx context.Context, at world.Coord) error {
	n, ok, err := c.world.Beeper(ctx, at)
	if err != nil || !ok {
		return err
	}
	if n.IsInfinite() || n <= 1 {
		return c.world.DeleteBeeper(ctx, at)
	}
	return c.world.PlaceBeeper(ctx, at, n-1)
}

// Preview describes what a click at the pointer would do without changing
// anything. The action is HoverNone unless exactly one button is held.
func (c *Controller) Preview(ctx context.Context, g geometry.Geometry, p input.Pointer) (Preview, error) {
	kind, at := c.target(g, p.X, p.Y)
	if kind == TargetNone {
		return Preview{}, nil
	}
	preview := Preview{Kind: kind, Coord: at}

	held := p.Held()
	if held == input.ButtonNone {
		return preview, nil
	}
	left := held == input.ButtonLeft

	switch c.mode {
	case ModeSingleBeeper, ModeInfiniteBeeper:
		n, present, err := c.world.Beeper(ctx, at)
		if err != nil {
			return preview, err
		}
		preview.Action = beeperAction(c.mode, left, n, present)
	case ModeVerticalWall:
		exists, err := c.world.HasWallEast(ctx, at)
		if err != nil {
			return preview, err
		}
		preview.Action = wallAction(left, exists)
	case ModeHorizontalWall:
		exists, err := c.world.HasWallNorth(ctx, at)
		if err != nil {
			return preview, err
		}
		preview.Action = wallAction(left, exists)
	}
	return preview, nil
}

func beeperAction(m Mode, left bool, n world.Beepers, present bool) HoverAction {
	if m == ModeInfiniteBeeper {
		switch {
		case left:
			return HoverSetInfinity
		case present:
			return HoverClear
		default:
			return HoverNoop
		}
	}
	switch {
	case left && present && n.IsInfinite():
		return HoverNoop
	case left:
		return HoverAdd
	case present:
		return HoverRemove
	default:
		return HoverNoop
	}
}

func wallAction(left, exists bool) HoverAction {
	switch {
	case left && exists:
		return HoverAlreadyPresent
	case left:
		return HoverAdd
	case exists:
		return HoverRemove
	default:
		return HoverNoop
	}
}
