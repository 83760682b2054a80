package world

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ErrUnknownRobot is returned for a handle that does not name a live robot
var ErrUnknownRobot = errors.New("unknown robot")

// ErrRobotInactive is returned when a turned-off robot is asked to move or turn
var ErrRobotInactive = errors.New("robot is turned off")

// WallSet is a set of intersections whose north (or east) edge is walled
type WallSet = mapset.Set[Coord]

// State is the mutable Karel world: robots, beeper piles and wall segments.
//
// State does no locking. Every call must come from the goroutine that drains
// the world's bridge (see package bridge); readers on other goroutines use a
// Snapshot instead.
type State struct {
	robots     []*Robot
	robotIndex map[RobotID]*Robot
	nextRobot  RobotID

	beepers    map[Coord]Beepers
	wallsNorth WallSet
	wallsEast  WallSet

	version uint64
}

// NewState creates an empty world
func NewState() *State {
	return &State{
		robotIndex: make(map[RobotID]*Robot),
		beepers:    make(map[Coord]Beepers),
		wallsNorth: mapset.New[Coord](),
		wallsEast:  mapset.New[Coord](),
	}
}

// Version increases by one for every applied mutation
func (s *State) Version() uint64 {
	return s.version
}

func (s *State) touch() {
	s.version++
}

// AddRobot places a new active robot and returns its handle.
// Coordinates are not checked against the board.
func (s *State) AddRobot(street, avenue int, dir Direction, color Color) RobotID {
	if !dir.IsValid() {
		dir = North
	}
	s.nextRobot++
	r := &Robot{
		ID:        s.nextRobot,
		Street:    street,
		Avenue:    avenue,
		Direction: dir,
		Color:     color,
		Active:    true,
	}
	s.robots = append(s.robots, r)
	s.robotIndex[r.ID] = r
	s.touch()
	return r.ID
}

// Robot returns a copy of the robot with the given handle
func (s *State) Robot(id RobotID) (Robot, bool) {
	r, ok := s.robotIndex[id]
	if !ok {
		return Robot{}, false
	}
	return *r, true
}

func (s *State) lookup(id RobotID) (*Robot, error) {
	r, ok := s.robotIndex[id]
	if !ok {
		return nil, fmt.Errorf("robot %d: %w", id, ErrUnknownRobot)
	}
	return r, nil
}

// TurnOffRobot deactivates a robot. It stays on the board, drawn dimmed.
func (s *State) TurnOffRobot(id RobotID) error {
	r, err := s.lookup(id)
	if err != nil {
		return err
	}
	r.Active = false
	s.touch()
	return nil
}

// MoveRobot advances a robot in its current heading. Steps below one move a
// single step. Walls and board edges are not consulted.
func (s *State) MoveRobot(id RobotID, steps int) error {
	r, err := s.lookup(id)
	if err != nil {
		return err
	}
	if !r.Active {
		return fmt.Errorf("robot %d: %w", id, ErrRobotInactive)
	}
	if steps < 1 {
		steps = 1
	}
	c := r.Coord().Step(r.Direction, steps)
	r.Street, r.Avenue = c.Street, c.Avenue
	s.touch()
	return nil
}

// TurnLeftRobot rotates a robot 90 degrees counter-clockwise
func (s *State) TurnLeftRobot(id RobotID) error {
	r, err := s.lookup(id)
	if err != nil {
		return err
	}
	if !r.Active {
		return fmt.Errorf("robot %d: %w", id, ErrRobotInactive)
	}
	r.Direction = r.Direction.Left()
	s.touch()
	return nil
}

// Beeper returns the pile at c; absent piles report false
func (s *State) Beeper(c Coord) (Beepers, bool) {
	n, ok := s.beepers[c]
	return n, ok
}

// PlaceBeeper sets the pile at c. A count of zero removes the pile.
func (s *State) PlaceBeeper(c Coord, n Beepers) error {
	if !n.Valid() {
		return fmt.Errorf("place beeper at %v: %d: %w", c, n, ErrNegativeCount)
	}
	if n == 0 {
		s.DeleteBeeper(c)
		return nil
	}
	s.beepers[c] = n
	s.touch()
	return nil
}

// DeleteBeeper removes the pile at c, if any
func (s *State) DeleteBeeper(c Coord) {
	if _, ok := s.beepers[c]; !ok {
		return
	}
	delete(s.beepers, c)
	s.touch()
}

// HasWallNorth reports whether the edge north of c is walled
func (s *State) HasWallNorth(c Coord) bool {
	return s.wallsNorth.Has(c)
}

// HasWallEast reports whether the edge east of c is walled
func (s *State) HasWallEast(c Coord) bool {
	return s.wallsEast.Has(c)
}

// PlaceWallNorth walls the edge north of c
func (s *State) PlaceWallNorth(c Coord) {
	if s.wallsNorth.Has(c) {
		return
	}
	s.wallsNorth.Put(c)
	s.touch()
}

// RemoveWallNorth clears the edge north of c
func (s *State) RemoveWallNorth(c Coord) {
	if !s.wallsNorth.Has(c) {
		return
	}
	s.wallsNorth.Remove(c)
	s.touch()
}

// PlaceWallEast walls the edge east of c
func (s *State) PlaceWallEast(c Coord) {
	if s.wallsEast.Has(c) {
		return
	}
	s.wallsEast.Put(c)
	s.touch()
}

// RemoveWallEast clears the edge east of c
func (s *State) RemoveWallEast(c Coord) {
	if !s.wallsEast.Has(c) {
		return
	}
	s.wallsEast.Remove(c)
	s.touch()
}

// Clear removes all robots, beepers and walls
func (s *State) Clear() {
	s.robots = nil
	s.robotIndex = make(map[RobotID]*Robot)
	s.beepers = make(map[Coord]Beepers)
	s.wallsNorth = mapset.New[Coord]()
	s.wallsEast = mapset.New[Coord]()
	s.touch()
}

// Snapshot returns a deep copy of the world. Later mutations of s are not
// visible through the returned value.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		robots:     make([]Robot, len(s.robots)),
		beepers:    make(map[Coord]Beepers, len(s.beepers)),
		wallsNorth: make(map[Coord]struct{}, s.wallsNorth.Size()),
		wallsEast:  make(map[Coord]struct{}, s.wallsEast.Size()),
		version:    s.version,
	}
	for i, r := range s.robots {
		snap.robots[i] = *r
	}
	for c, n := range s.beepers {
		snap.beepers[c] = n
	}
	s.wallsNorth.Each(func(c Coord) {
		snap.wallsNorth[c] = struct{}{}
	})
	s.wallsEast.Each(func(c Coord) {
		snap.wallsEast[c] = struct{}{}
	})
	return snap
}
