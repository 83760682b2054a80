// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// WriteMapDump writes a full debug dump of f: metadata, legend, the board,
// and every robot, pile and wall with its coordinates. The format is
// sectioned key: value text so it diffs well.
func WriteMapDump(w io.Writer, f state.Frame) error {
	snap := f.Snapshot
	streets, avenues := f.Geometry.Streets(), f.Geometry.Avenues()

	bw := &errWriter{w: w}

	bw.println("=== MAP DUMP DEBUG (world layout, robots, scenery) ===")
	bw.println("")
	bw.println("--- Metadata ---")
	bw.printf("streets: %d\n", streets)
	bw.printf("avenues: %d\n", avenues)
	bw.printf("coordinate_system: street,avenue (1-based, street=vertical, avenue=horizontal)\n")
	bw.printf("version: %d\n", snap.Version())
	bw.printf("speed: %d\n", f.Speed)
	bw.printf("robot_count: %d\n", snap.RobotCount())
	bw.printf("pile_count: %d\n", len(snap.Beepers()))
	bw.printf("walls_east: %d\n", len(snap.WallsEast()))
	bw.printf("walls_north: %d\n", len(snap.WallsNorth()))
	if f.Editing {
		bw.printf("editor_mode: %s\n", f.Mode)
	}
	bw.println("")

	bw.println("--- Legend (board symbols) ---")
	bw.printf("%s = empty intersection  N = pile of N beepers  %s = infinite pile  ^ < v > = robot heading  %s = wall east  %s = wall north\n",
		renderer.IconEmpty, renderer.IconInfinite, renderer.IconWallV, renderer.IconWallH)
	bw.println("")

	bw.println("--- Board ---")
	for _, line := range renderer.Board(snap, streets, avenues, renderer.PlainStyle) {
		bw.println(line)
	}
	bw.println("")

	bw.println("Robots:")
	for _, r := range snap.Robots() {
		bw.printf("  id: %d street: %d avenue: %d direction: %s color: %s active: %v\n",
			r.ID, r.Street, r.Avenue, r.Direction, r.Color, r.Active)
	}
	bw.println("")

	bw.println("Beepers:")
	for _, p := range snap.Beepers() {
		bw.printf("  street: %d avenue: %d count: %s\n", p.Coord.Street, p.Coord.Avenue, p.Count)
	}
	bw.println("")

	bw.println("Walls east:")
	for _, c := range snap.WallsEast() {
		bw.printf("  street: %d avenue: %d\n", c.Street, c.Avenue)
	}
	bw.println("")

	bw.println("Walls north:")
	for _, c := range snap.WallsNorth() {
		bw.printf("  street: %d avenue: %d\n", c.Street, c.Avenue)
	}
	bw.println("")

	bw.println("=== END MAP DUMP ===")
	return bw.err
}

// DumpMapToFile writes the dump to map.txt in the working directory and
// returns its absolute path.
func DumpMapToFile(f state.Frame) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	out, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := WriteMapDump(out, f); err != nil {
		return absPath, err
	}
	if err := out.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
