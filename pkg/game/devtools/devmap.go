package devtools

import (
	"karelworld/pkg/engine/world"
)

// DevWorldMinSize is the smallest board that shows the whole dev world
const DevWorldMinSize = 10

// BuildDevWorld replaces st with a hard-coded developer test world. Every
// kind of drawable element is placed in its own street, one avenue apart:
//
//	street 9: robots facing each heading
//	street 7: switched-off robots in each color
//	street 5: piles of 1, 5, 42, 150 and infinite beepers
//	street 3: a single east wall, a single north wall and a walled-in box
//	street 1: a robot standing on a pile
func BuildDevWorld(st *world.State) {
	st.Clear()

	const margin = 2
	avenue := func(i int) int { return 1 + i*margin }

	for i, d := range world.AllDirections() {
		st.AddRobot(9, avenue(i), d, world.Color(i+1))
	}

	colors := []world.Color{world.ColorNone, world.ColorRed, world.ColorGreen, world.ColorBlue, world.ColorPurple}
	for i, c := range colors {
		id := st.AddRobot(7, avenue(i), world.East, c)
		_ = st.TurnOffRobot(id)
	}

	piles := []world.Beepers{1, 5, 42, 150, world.Infinite}
	for i, n := range piles {
		_ = st.PlaceBeeper(world.At(5, avenue(i)), n)
	}

	st.PlaceWallEast(world.At(3, avenue(0)))
	st.PlaceWallNorth(world.At(3, avenue(1)))
	box := world.At(3, avenue(3))
	st.PlaceWallEast(box)
	st.PlaceWallEast(world.At(box.Street, box.Avenue-1))
	st.PlaceWallNorth(box)
	st.PlaceWallNorth(world.At(box.Street-1, box.Avenue))

	_ = st.PlaceBeeper(world.At(1, 1), 3)
	st.AddRobot(1, 1, world.North, world.ColorOrange)
}
