// Package karel is the mutation interface a robot task or the editor uses to
// change the world. Every call is routed through a bridge.Executor, so the
// same code runs correctly on the render goroutine (Local) and on a worker
// goroutine (Remote).
package karel

import (
	"context"
	"sync/atomic"
	"time"

	"karelworld/pkg/engine/bridge"
	"karelworld/pkg/engine/world"
)

// Speed limits
const (
	MinSpeed     = 0
	MaxSpeed     = 100
	DefaultSpeed = 40
	SpeedStep    = 10
)

// paceUnit is the delay per missing speed point between task steps
const paceUnit = 5 * time.Millisecond

// World wraps a world.State with an executor
type World struct {
	state *world.State
	exec  bridge.Executor
	speed *atomic.Int32
}

// New creates a facade over state that runs every operation through exec
func New(state *world.State, exec bridge.Executor) *World {
	w := &World{state: state, exec: exec, speed: new(atomic.Int32)}
	w.speed.Store(DefaultSpeed)
	return w
}

// WithExecutor returns a facade over the same world and speed setting that
// routes through a different executor.
func (w *World) WithExecutor(exec bridge.Executor) *World {
	return &World{state: w.state, exec: exec, speed: w.speed}
}

func (w *World) do(ctx context.Context, fn func() error) error {
	var inner error
	if err := w.exec.Exec(ctx, func() { inner = fn() }); err != nil {
		return err
	}
	return inner
}

// Speed returns the current task speed, 0 (slowest) to 100 (no delay)
func (w *World) Speed() int {
	return int(w.speed.Load())
}

// SetSpeed clamps and stores a new task speed
func (w *World) SetSpeed(speed int) int {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	w.speed.Store(int32(speed))
	return speed
}

// Pace sleeps between task steps according to the current speed. It returns
// ctx.Err() if the context ends first.
func (w *World) Pace(ctx context.Context) error {
	d := time.Duration(MaxSpeed-w.Speed()) * paceUnit
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddRobot places a new robot and returns a handle to it
func (w *World) AddRobot(ctx context.Context, street, avenue int, dir world.Direction, color world.Color) (*Robot, error) {
	var id world.RobotID
	err := w.do(ctx, func() error {
		id = w.state.AddRobot(street, avenue, dir, color)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Robot{w: w, id: id}, nil
}

// PlaceBeeper sets the pile at c; zero removes it
func (w *World) PlaceBeeper(ctx context.Context, c world.Coord, n world.Beepers) error {
	return w.do(ctx, func() error {
		return w.state.PlaceBeeper(c, n)
	})
}

// DeleteBeeper removes the pile at c
func (w *World) DeleteBeeper(ctx context.Context, c world.Coord) error {
	return w.do(ctx, func() error {
		w.state.DeleteBeeper(c)
		return nil
	})
}

// PlaceWallNorth walls the edge north of c
func (w *World) PlaceWallNorth(ctx context.Context, c world.Coord) error {
	return w.do(ctx, func() error {
		w.state.PlaceWallNorth(c)
		return nil
	})
}

// RemoveWallNorth clears the edge north of c
func (w *World) RemoveWallNorth(ctx context.Context, c world.Coord) error {
	return w.do(ctx, func() error {
		w.state.RemoveWallNorth(c)
		return nil
	})
}

// PlaceWallEast walls the edge east of c
func (w *World) PlaceWallEast(ctx context.Context, c world.Coord) error {
	return w.do(ctx, func() error {
		w.state.PlaceWallEast(c)
		return nil
	})
}

// RemoveWallEast clears the edge east of c
func (w *World) RemoveWallEast(ctx context.Context, c world.Coord) error {
	return w.do(ctx, func() error {
		w.state.RemoveWallEast(c)
		return nil
	})
}

// Clear removes robots, beepers and walls
func (w *World) Clear(ctx context.Context) error {
	return w.do(ctx, func() error {
		w.state.Clear()
		return nil
	})
}

// Update runs fn against the live state as one serialized step. Nothing
// else observes the world between the mutations fn makes.
func (w *World) Update(ctx context.Context, fn func(s *world.State) error) error {
	return w.do(ctx, func() error {
		return fn(w.state)
	})
}

// Beeper reads the pile at c
func (w *World) Beeper(ctx context.Context, c world.Coord) (world.Beepers, bool, error) {
	var (
		n  world.Beepers
		ok bool
	)
	err := w.do(ctx, func() error {
		n, ok = w.state.Beeper(c)
		return nil
	})
	return n, ok, err
}

// HasWallNorth reports whether the edge north of c is walled
func (w *World) HasWallNorth(ctx context.Context, c world.Coord) (bool, error) {
	var has bool
	err := w.do(ctx, func() error {
		has = w.state.HasWallNorth(c)
		return nil
	})
	return has, err
}

// HasWallEast reports whether the edge east of c is walled
func (w *World) HasWallEast(ctx context.Context, c world.Coord) (bool, error) {
	var has bool
	err := w.do(ctx, func() error {
		has = w.state.HasWallEast(c)
		return nil
	})
	return has, err
}

// Snapshot copies the whole world
func (w *World) Snapshot(ctx context.Context) (world.Snapshot, error) {
	var snap world.Snapshot
	err := w.do(ctx, func() error {
		snap = w.state.Snapshot()
		return nil
	})
	return snap, err
}

// Robot is a handle to one robot in a World
type Robot struct {
	w  *World
	id world.RobotID
}

// ID returns the robot's handle in the underlying state
func (r *Robot) ID() world.RobotID {
	return r.id
}

// Move advances the robot; steps below one move once
func (r *Robot) Move(ctx context.Context, steps int) error {
	return r.w.do(ctx, func() error {
		return r.w.state.MoveRobot(r.id, steps)
	})
}

// TurnLeft rotates the robot counter-clockwise
func (r *Robot) TurnLeft(ctx context.Context) error {
	return r.w.do(ctx, func() error {
		return r.w.state.TurnLeftRobot(r.id)
	})
}

// TurnOff deactivates the robot
func (r *Robot) TurnOff(ctx context.Context) error {
	return r.w.do(ctx, func() error {
		return r.w.state.TurnOffRobot(r.id)
	})
}

// State returns a copy of the robot's current position, heading and status
func (r *Robot) State(ctx context.Context) (world.Robot, error) {
	var (
		robot world.Robot
		ok    bool
	)
	err := r.w.do(ctx, func() error {
		robot, ok = r.w.state.Robot(r.id)
		return nil
	})
	if err != nil {
		return world.Robot{}, err
	}
	if !ok {
		return world.Robot{}, world.ErrUnknownRobot
	}
	return robot, nil
}
