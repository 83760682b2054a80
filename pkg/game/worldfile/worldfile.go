// Package worldfile reads and writes the flat KarelWorld text format:
//
//	KarelWorld
//	beepers <street> <avenue> <count|inf>
//	eastwestwalls <street> <avenue>
//	northsouthwalls <street> <avenue>
//
// Blank lines and text after '#' are ignored, as are unknown directives. A
// legacy "world <streets> <avenues>" line declares the board size.
package worldfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"karelworld/pkg/engine/world"
)

// Header is the first line of every saved world
const Header = "KarelWorld"

// Directives
const (
	dirBeepers    = "beepers"
	dirEastWalls  = "eastwestwalls"
	dirNorthWalls = "northsouthwalls"
	dirWorld      = "world"
)

// Size is a declared board size
type Size struct {
	Streets int
	Avenues int
}

// Contents is everything a world file describes. Robots are not stored.
type Contents struct {
	Beepers    map[world.Coord]world.Beepers
	WallsEast  []world.Coord
	WallsNorth []world.Coord
	// Size is nil when the file declares no board size
	Size *Size
}

// FromSnapshot collects the savable parts of a world
func FromSnapshot(s world.Snapshot) Contents {
	return Contents{
		Beepers:    s.BeeperMap(),
		WallsEast:  s.WallsEast(),
		WallsNorth: s.WallsNorth(),
	}
}

// Apply clears state, robots included, and installs the beepers and walls of c.
func (c Contents) Apply(state *world.State) error {
	state.Clear()
	for coord, n := range c.Beepers {
		if err := state.PlaceBeeper(coord, n); err != nil {
			return err
		}
	}
	for _, coord := range c.WallsEast {
		state.PlaceWallEast(coord)
	}
	for _, coord := range c.WallsNorth {
		state.PlaceWallNorth(coord)
	}
	return nil
}

// SizeMismatch reports whether the declared size differs from the live board
func (c Contents) SizeMismatch(streets, avenues int) bool {
	return c.Size != nil && (c.Size.Streets != streets || c.Size.Avenues != avenues)
}

// ParseError describes a malformed line
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errFieldCount = errors.New("missing fields")

// Save writes c in deterministic order: beepers, then east walls, then north
// walls, each sorted by coordinate.
func Save(w io.Writer, c Contents) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)

	coords := make([]world.Coord, 0, len(c.Beepers))
	for coord, n := range c.Beepers {
		if n == 0 {
			continue
		}
		coords = append(coords, coord)
	}
	world.SortCoords(coords)
	for _, coord := range coords {
		fmt.Fprintf(bw, "%s %d %d %s\n", dirBeepers, coord.Street, coord.Avenue, c.Beepers[coord])
	}

	for _, set := range []struct {
		directive string
		coords    []world.Coord
	}{
		{dirEastWalls, c.WallsEast},
		{dirNorthWalls, c.WallsNorth},
	} {
		sorted := append([]world.Coord(nil), set.coords...)
		world.SortCoords(sorted)
		for _, coord := range sorted {
			fmt.Fprintf(bw, "%s %d %d\n", set.directive, coord.Street, coord.Avenue)
		}
	}
	return bw.Flush()
}

// Load parses a world. Any malformed line fails the whole load with a
// *ParseError; nothing is returned for a failed load.
func Load(r io.Reader) (Contents, error) {
	c := Contents{Beepers: make(map[world.Coord]world.Beepers)}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		line := text
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		fail := func(err error) (Contents, error) {
			return Contents{}, &ParseError{Line: lineNo, Text: text, Err: err}
		}

		switch strings.ToLower(fields[0]) {
		case dirBeepers:
			if len(fields) < 4 {
				return fail(errFieldCount)
			}
			coord, err := parseCoord(fields[1], fields[2])
			if err != nil {
				return fail(err)
			}
			n, err := parseCount(fields[3])
			if err != nil {
				return fail(err)
			}
			if n == 0 {
				continue
			}
			c.Beepers[coord] = n
		case dirEastWalls, dirNorthWalls:
			if len(fields) < 3 {
				return fail(errFieldCount)
			}
			coord, err := parseCoord(fields[1], fields[2])
			if err != nil {
				return fail(err)
			}
			if strings.EqualFold(fields[0], dirEastWalls) {
				c.WallsEast = append(c.WallsEast, coord)
			} else {
				c.WallsNorth = append(c.WallsNorth, coord)
			}
		case dirWorld:
			if len(fields) < 3 {
				return fail(errFieldCount)
			}
			streets, err := strconv.Atoi(fields[1])
			if err != nil {
				return fail(err)
			}
			avenues, err := strconv.Atoi(fields[2])
			if err != nil {
				return fail(err)
			}
			c.Size = &Size{Streets: streets, Avenues: avenues}
		default:
			// header and unknown directives
		}
	}
	if err := sc.Err(); err != nil {
		return Contents{}, fmt.Errorf("read world: %w", err)
	}
	return c, nil
}

func parseCoord(street, avenue string) (world.Coord, error) {
	s, err := strconv.Atoi(street)
	if err != nil {
		return world.Coord{}, err
	}
	a, err := strconv.Atoi(avenue)
	if err != nil {
		return world.Coord{}, err
	}
	return world.At(s, a), nil
}

func parseCount(s string) (world.Beepers, error) {
	if strings.EqualFold(s, "inf") || strings.EqualFold(s, "infinite") || strings.EqualFold(s, "infinity") {
		return world.Infinite, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, world.ErrNegativeCount
	}
	return world.Beepers(n), nil
}

// Resolve places a bare file name under dir. Absolute paths and names that
// already contain a directory are returned as given.
func Resolve(dir, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || dir == "" || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(dir, name)
}

// SaveFile writes c to path, creating parent directories as needed
func SaveFile(path string, c Contents) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save world: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	if err := Save(f, c); err != nil {
		f.Close()
		return fmt.Errorf("save world %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save world %s: %w", path, err)
	}
	return nil
}

// LoadFile reads and parses the world at path
func LoadFile(path string) (Contents, error) {
	f, err := os.Open(path)
	if err != nil {
		return Contents{}, fmt.Errorf("open world: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return Contents{}, fmt.Errorf("load world %s: %w", path, err)
	}
	return c, nil
}
