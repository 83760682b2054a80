package worldfile

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"karelworld/pkg/engine/world"
)

const example = `KarelWorld
beepers 3 2 1
beepers 5 5 inf
eastwestwalls 2 4
northsouthwalls 3 1
`

func TestLoad_Example(t *testing.T) {
	c, err := Load(strings.NewReader(example))
	if err != nil {
		t.Fatal(err)
	}
	if n := c.Beepers[world.At(3, 2)]; n != 1 {
		t.Errorf("beepers at (3, 2) = %v, want 1", n)
	}
	if n := c.Beepers[world.At(5, 5)]; !n.IsInfinite() {
		t.Errorf("beepers at (5, 5) = %v, want inf", n)
	}
	if len(c.WallsEast) != 1 || c.WallsEast[0] != world.At(2, 4) {
		t.Errorf("WallsEast = %v, want [(2, 4)]", c.WallsEast)
	}
	if len(c.WallsNorth) != 1 || c.WallsNorth[0] != world.At(3, 1) {
		t.Errorf("WallsNorth = %v, want [(3, 1)]", c.WallsNorth)
	}
	if c.Size != nil {
		t.Errorf("Size = %+v, want nil", c.Size)
	}
}

func TestSave_ExampleReproducesFile(t *testing.T) {
	c, err := Load(strings.NewReader(example))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, c); err != nil {
		t.Fatal(err)
	}
	if buf.String() != example {
		t.Errorf("Save() =\n%s\nwant\n%s", buf.String(), example)
	}
}

func TestSave_SortedSections(t *testing.T) {
	c := Contents{
		Beepers: map[world.Coord]world.Beepers{
			world.At(4, 1): 2,
			world.At(1, 9): world.Infinite,
			world.At(1, 2): 7,
			world.At(2, 2): 0,
		},
		WallsEast:  []world.Coord{world.At(3, 3), world.At(1, 5)},
		WallsNorth: []world.Coord{world.At(2, 1), world.At(2, 0)},
	}
	var buf bytes.Buffer
	if err := Save(&buf, c); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"KarelWorld",
		"beepers 1 2 7",
		"beepers 1 9 inf",
		"beepers 4 1 2",
		"eastwestwalls 1 5",
		"eastwestwalls 3 3",
		"northsouthwalls 2 0",
		"northsouthwalls 2 1",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("Save() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestLoad_CommentsBlanksAndUnknownDirectives(t *testing.T) {
	in := `# a comment
KarelWorld

robot 1 1 north 0
beepers 2 2 3   # trailing comment
BEEPERS 2 3 inf
future_directive 1 2 3 4
beepers 4 4 0
`
	c, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Beepers) != 2 {
		t.Errorf("Beepers = %v, want two piles", c.Beepers)
	}
	if _, ok := c.Beepers[world.At(4, 4)]; ok {
		t.Error("zero pile was stored")
	}
}

func TestLoad_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		line int
	}{
		{"bad street", "KarelWorld\nbeepers x 2 1\n", 2},
		{"bad count", "KarelWorld\nbeepers 1 2 many\n", 2},
		{"negative count", "beepers 1 2 -4\n", 1},
		{"short wall", "KarelWorld\n\neastwestwalls 2\n", 3},
		{"bad size", "world ten 10\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.in))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Load() err = %v, want *ParseError", err)
			}
			if pe.Line != tc.line {
				t.Errorf("ParseError.Line = %d, want %d", pe.Line, tc.line)
			}
		})
	}

	_, err := Load(strings.NewReader("beepers 1 2 -4\n"))
	if !errors.Is(err, world.ErrNegativeCount) {
		t.Errorf("negative count err = %v, want ErrNegativeCount", err)
	}
	_, err = Load(strings.NewReader("beepers 1 2 x\n"))
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("non-integer err = %v, want strconv.ErrSyntax", err)
	}
}

func TestLoad_DeclaredSizeIsAdvisory(t *testing.T) {
	c, err := Load(strings.NewReader("KarelWorld\nworld 8 12\nbeepers 9 9 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Size == nil || c.Size.Streets != 8 || c.Size.Avenues != 12 {
		t.Fatalf("Size = %+v, want 8x12", c.Size)
	}
	if !c.SizeMismatch(10, 10) {
		t.Error("SizeMismatch(10, 10) = false")
	}
	if c.SizeMismatch(8, 12) {
		t.Error("SizeMismatch(8, 12) = true")
	}
	if _, ok := c.Beepers[world.At(9, 9)]; !ok {
		t.Error("content outside the declared size was dropped")
	}
}

func TestRoundTrip(t *testing.T) {
	Convey("Saving then loading any configuration reproduces it", t, func() {
		rng := rand.New(rand.NewSource(42))
		for trial := 0; trial < 50; trial++ {
			state := world.NewState()
			piles, walls := rng.Intn(20), rng.Intn(15)
			for i := 0; i < piles; i++ {
				c := world.At(rng.Intn(12), rng.Intn(12))
				n := world.Beepers(rng.Intn(6))
				if rng.Intn(5) == 0 {
					n = world.Infinite
				}
				So(state.PlaceBeeper(c, n), ShouldBeNil)
			}
			for i := 0; i < walls; i++ {
				state.PlaceWallEast(world.At(rng.Intn(12), rng.Intn(12)))
				state.PlaceWallNorth(world.At(rng.Intn(12), rng.Intn(12)))
			}
			before := state.Snapshot()

			var buf bytes.Buffer
			So(Save(&buf, FromSnapshot(before)), ShouldBeNil)
			loaded, err := Load(&buf)
			So(err, ShouldBeNil)

			restored := world.NewState()
			So(loaded.Apply(restored), ShouldBeNil)
			after := restored.Snapshot()

			So(after.Beepers(), ShouldResemble, before.Beepers())
			So(after.WallsEast(), ShouldResemble, before.WallsEast())
			So(after.WallsNorth(), ShouldResemble, before.WallsNorth())
		}
	})
}

func TestApply_ClearsEverything(t *testing.T) {
	state := world.NewState()
	state.AddRobot(1, 1, world.North, world.ColorRed)
	_ = state.PlaceBeeper(world.At(7, 7), 3)
	state.PlaceWallEast(world.At(7, 7))

	c, err := Load(strings.NewReader(example))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Apply(state); err != nil {
		t.Fatal(err)
	}
	snap := state.Snapshot()
	if snap.RobotCount() != 0 {
		t.Errorf("RobotCount() = %d, want 0", snap.RobotCount())
	}
	if _, ok := snap.Beeper(world.At(7, 7)); ok || snap.HasWallEast(world.At(7, 7)) {
		t.Error("previous scenery survived the load")
	}
	if !snap.HasWallEast(world.At(2, 4)) {
		t.Error("loaded wall missing")
	}
}

func TestLoad_IgnoresTrailingFields(t *testing.T) {
	c, err := Load(strings.NewReader("KarelWorld\nbeepers 3 2 1 extra\nnorthsouthwalls 3 1 extra\nworld 8 9 10\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n := c.Beepers[world.At(3, 2)]; n != 1 {
		t.Errorf("beepers at (3, 2) = %v, want 1", n)
	}
	if len(c.WallsNorth) != 1 || c.WallsNorth[0] != world.At(3, 1) {
		t.Errorf("WallsNorth = %v, want [(3, 1)]", c.WallsNorth)
	}
	if c.Size == nil || c.Size.Streets != 8 || c.Size.Avenues != 9 {
		t.Errorf("Size = %+v, want 8x9", c.Size)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		dir, name, want string
	}{
		{"worlds", "maze.txt", filepath.Join("worlds", "maze.txt")},
		{"worlds", "  maze.txt ", filepath.Join("worlds", "maze.txt")},
		{"worlds", filepath.Join("other", "maze.txt"), filepath.Join("other", "maze.txt")},
		{"", "maze.txt", "maze.txt"},
		{"worlds", "", ""},
	}
	for _, tc := range cases {
		if got := Resolve(tc.dir, tc.name); got != tc.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tc.dir, tc.name, got, tc.want)
		}
	}
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worlds", "saved.txt")
	c, _ := Load(strings.NewReader(example))
	if err := SaveFile(path, c); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != example {
		t.Errorf("file contents =\n%s", data)
	}
	back, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Beepers) != 2 {
		t.Errorf("LoadFile beepers = %v", back.Beepers)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("LoadFile on a missing file err = nil")
	}
}
