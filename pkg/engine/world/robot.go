package world

import (
	"fmt"
	"strings"
)

// RobotID identifies a robot for the lifetime of a world. IDs are never
// reused, so a handle taken before Clear simply stops resolving.
type RobotID uint64

// Color is the badge tag drawn on a robot
type Color int

// Robot colors
const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorBlack
	ColorWhite
	ColorOrange
	ColorPurple
	ColorPink
	ColorCyan
)

var colorNames = []string{"none", "red", "green", "blue", "yellow", "black", "white", "orange", "purple", "pink", "cyan"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// ParseColor returns the color with the given name
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ColorNone, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorNone, fmt.Errorf("unknown robot color %q", s)
}

// Robot is the visual state of one robot
type Robot struct {
	ID        RobotID
	Street    int
	Avenue    int
	Direction Direction
	Color     Color
	Active    bool
}

// Coord returns the robot's current intersection
func (r Robot) Coord() Coord {
	return Coord{Street: r.Street, Avenue: r.Avenue}
}
