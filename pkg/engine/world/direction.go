package world

import (
	"fmt"
	"strings"
)

// Direction represents the heading of a robot
type Direction int

// Direction constants. The declaration order is the turn-left ring:
// North -> West -> South -> East -> North.
const (
	North Direction = iota
	West
	South
	East
)

// AllDirections returns all valid directions in turn-left order
func AllDirections() []Direction {
	return []Direction{North, West, South, East}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= East
}

// Left returns the direction after a 90 degree counter-clockwise turn
func (d Direction) Left() Direction {
	if !d.IsValid() {
		return North
	}
	return (d + 1) % 4
}

// Right returns the direction after a 90 degree clockwise turn
func (d Direction) Right() Direction {
	if !d.IsValid() {
		return North
	}
	return (d + 3) % 4
}

// Delta returns the street and avenue offsets of a single step in this direction.
// Streets grow northward and avenues grow eastward.
func (d Direction) Delta() (streetDelta, avenueDelta int) {
	switch d {
	case North:
		return 1, 0
	case East:
		return 0, 1
	case South:
		return -1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// ParseDirection accepts full names or their first letter, case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return North, fmt.Errorf("unknown direction %q", s)
}
