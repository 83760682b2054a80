package world

import (
	"fmt"
	"sort"
)

// Coord is an intersection of the lattice. Streets run east-west and are
// numbered northward; avenues run north-south and are numbered eastward.
type Coord struct {
	Street int
	Avenue int
}

// At is shorthand for Coord{street, avenue}
func At(street, avenue int) Coord {
	return Coord{Street: street, Avenue: avenue}
}

// Less orders coordinates by street, then avenue
func (c Coord) Less(o Coord) bool {
	if c.Street != o.Street {
		return c.Street < o.Street
	}
	return c.Avenue < o.Avenue
}

// Step returns the coordinate n steps away in direction d
func (c Coord) Step(d Direction, n int) Coord {
	ds, da := d.Delta()
	return Coord{Street: c.Street + ds*n, Avenue: c.Avenue + da*n}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Street, c.Avenue)
}

// SortCoords sorts coordinates in place using Less
func SortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}
