package karel

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sort"
	"time"

	"karelworld/pkg/engine/world"
)

// settleDelay lets the window come up before a task issues its first command
const settleDelay = 50 * time.Millisecond

// Task is a robot program run on a worker goroutine
type Task func(ctx context.Context, w *World) error

// Run starts task on its own goroutine after a short settle delay. Failures
// and panics are logged, never propagated. The returned channel is closed
// once the task has finished.
func Run(ctx context.Context, w *World, name string, task Task) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		t := time.NewTimer(settleDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return
		}

		log.Printf("task %s: started", name)
		if err := runTask(ctx, w, task); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Printf("task %s: cancelled", name)
				return
			}
			log.Printf("task %s: failed: %v", name, err)
			return
		}
		log.Printf("task %s: finished", name)
	}()
	return done
}

func runTask(ctx context.Context, w *World, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return task(ctx, w)
}

var demos = map[string]Task{
	"square": Square,
	"stairs": Stairs,
	"sweep":  Sweep,
}

// Demo returns the built-in task with the given name
func Demo(name string) (Task, bool) {
	t, ok := demos[name]
	return t, ok
}

// DemoNames lists the built-in tasks
func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Square walks a red robot round a 4x4 square, dropping a beeper at each corner
func Square(ctx context.Context, w *World) error {
	r, err := w.AddRobot(ctx, 1, 1, world.East, world.ColorRed)
	if err != nil {
		return err
	}
	for side := 0; side < 4; side++ {
		if err := putBeeper(ctx, w, r); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if err := w.Pace(ctx); err != nil {
				return err
			}
			if err := r.Move(ctx, 1); err != nil {
				return err
			}
		}
		if err := r.TurnLeft(ctx); err != nil {
			return err
		}
	}
	return r.TurnOff(ctx)
}

// Stairs builds a staircase of walls and climbs a blue robot up it
func Stairs(ctx context.Context, w *World) error {
	const steps = 4
	for i := 1; i <= steps; i++ {
		if err := w.PlaceWallEast(ctx, world.At(i, i)); err != nil {
			return err
		}
		if err := w.PlaceWallNorth(ctx, world.At(i, i+1)); err != nil {
			return err
		}
	}
	r, err := w.AddRobot(ctx, 1, 1, world.North, world.ColorBlue)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		if err := w.Pace(ctx); err != nil {
			return err
		}
		if err := r.Move(ctx, 1); err != nil {
			return err
		}
		if err := turnRight(ctx, r); err != nil {
			return err
		}
		if err := w.Pace(ctx); err != nil {
			return err
		}
		if err := r.Move(ctx, 1); err != nil {
			return err
		}
		if err := r.TurnLeft(ctx); err != nil {
			return err
		}
	}
	return r.TurnOff(ctx)
}

// Sweep drives a green robot along street 1, collecting every beeper it passes
func Sweep(ctx context.Context, w *World) error {
	snap, err := w.Snapshot(ctx)
	if err != nil {
		return err
	}
	last := 1
	for _, p := range snap.Beepers() {
		if p.Coord.Street == 1 && p.Coord.Avenue > last {
			last = p.Coord.Avenue
		}
	}

	r, err := w.AddRobot(ctx, 1, 1, world.East, world.ColorGreen)
	if err != nil {
		return err
	}
	for {
		if err := pickAll(ctx, w, r); err != nil {
			return err
		}
		st, err := r.State(ctx)
		if err != nil {
			return err
		}
		if st.Avenue >= last {
			break
		}
		if err := w.Pace(ctx); err != nil {
			return err
		}
		if err := r.Move(ctx, 1); err != nil {
			return err
		}
	}
	return r.TurnOff(ctx)
}

func turnRight(ctx context.Context, r *Robot) error {
	for i := 0; i < 3; i++ {
		if err := r.TurnLeft(ctx); err != nil {
			return err
		}
	}
	return nil
}

// putBeeper adds one beeper under the robot in a single step
func putBeeper(ctx context.Context, w *World, r *Robot) error {
	return w.Update(ctx, func(s *world.State) error {
		robot, ok := s.Robot(r.ID())
		if !ok {
			return world.ErrUnknownRobot
		}
		n, _ := s.Beeper(robot.Coord())
		return s.PlaceBeeper(robot.Coord(), n.Increment())
	})
}

// pickAll removes a finite pile under the robot; infinite piles are left alone
func pickAll(ctx context.Context, w *World, r *Robot) error {
	return w.Update(ctx, func(s *world.State) error {
		robot, ok := s.Robot(r.ID())
		if !ok {
			return world.ErrUnknownRobot
		}
		if n, ok := s.Beeper(robot.Coord()); ok && !n.IsInfinite() {
			s.DeleteBeeper(robot.Coord())
		}
		return nil
	})
}
