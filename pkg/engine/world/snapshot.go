package world

// Pile is one beeper pile in a snapshot listing
type Pile struct {
	Coord Coord
	Count Beepers
}

// Snapshot is an immutable copy of the world taken between mutations.
// The zero value is an empty world.
type Snapshot struct {
	robots     []Robot
	beepers    map[Coord]Beepers
	wallsNorth map[Coord]struct{}
	wallsEast  map[Coord]struct{}
	version    uint64
}

// Version is the State version the snapshot was taken at
func (s Snapshot) Version() uint64 {
	return s.version
}

// Robots returns the robots in creation order
func (s Snapshot) Robots() []Robot {
	out := make([]Robot, len(s.robots))
	copy(out, s.robots)
	return out
}

// RobotCount returns the number of robots, active or not
func (s Snapshot) RobotCount() int {
	return len(s.robots)
}

// Beeper returns the pile at c
func (s Snapshot) Beeper(c Coord) (Beepers, bool) {
	n, ok := s.beepers[c]
	return n, ok
}

// Beepers returns all piles sorted by coordinate
func (s Snapshot) Beepers() []Pile {
	keys := make([]Coord, 0, len(s.beepers))
	for c := range s.beepers {
		keys = append(keys, c)
	}
	SortCoords(keys)
	out := make([]Pile, len(keys))
	for i, c := range keys {
		out[i] = Pile{Coord: c, Count: s.beepers[c]}
	}
	return out
}

// BeeperMap returns a fresh copy of the beeper piles
func (s Snapshot) BeeperMap() map[Coord]Beepers {
	out := make(map[Coord]Beepers, len(s.beepers))
	for c, n := range s.beepers {
		out[c] = n
	}
	return out
}

// HasWallNorth reports whether the edge north of c is walled
func (s Snapshot) HasWallNorth(c Coord) bool {
	_, ok := s.wallsNorth[c]
	return ok
}

// HasWallEast reports whether the edge east of c is walled
func (s Snapshot) HasWallEast(c Coord) bool {
	_, ok := s.wallsEast[c]
	return ok
}

// WallsNorth returns the north-walled intersections, sorted
func (s Snapshot) WallsNorth() []Coord {
	return sortedKeys(s.wallsNorth)
}

// WallsEast returns the east-walled intersections, sorted
func (s Snapshot) WallsEast() []Coord {
	return sortedKeys(s.wallsEast)
}

func sortedKeys(m map[Coord]struct{}) []Coord {
	out := make([]Coord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	SortCoords(out)
	return out
}
