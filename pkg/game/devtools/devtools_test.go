package devtools

import (
	"bytes"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/state"
)

func devFrame() state.Frame {
	st := world.NewState()
	BuildDevWorld(st)
	return state.Frame{
		Snapshot: st.Snapshot(),
		Geometry: geometry.New(DevWorldMinSize, DevWorldMinSize, 800, 30),
		Speed:    40,
	}
}

func TestBuildDevWorld(t *testing.T) {
	Convey("Given the developer test world", t, func() {
		snap := devFrame().Snapshot

		Convey("it holds robots in every heading and some switched off", func() {
			So(snap.RobotCount(), ShouldEqual, 10)
			inactive := 0
			headings := map[world.Direction]bool{}
			for _, r := range snap.Robots() {
				if !r.Active {
					inactive++
				}
				headings[r.Direction] = true
			}
			So(inactive, ShouldEqual, 5)
			So(len(headings), ShouldEqual, 4)
		})

		Convey("every pile fits on the board", func() {
			for _, p := range snap.Beepers() {
				So(p.Coord.Street, ShouldBeBetweenOrEqual, 1, DevWorldMinSize)
				So(p.Coord.Avenue, ShouldBeBetweenOrEqual, 1, DevWorldMinSize)
			}
			n, ok := snap.Beeper(world.At(5, 9))
			So(ok, ShouldBeTrue)
			So(n.IsInfinite(), ShouldBeTrue)
		})

		Convey("the box is walled on all four sides", func() {
			So(snap.HasWallEast(world.At(3, 7)), ShouldBeTrue)
			So(snap.HasWallEast(world.At(3, 6)), ShouldBeTrue)
			So(snap.HasWallNorth(world.At(3, 7)), ShouldBeTrue)
			So(snap.HasWallNorth(world.At(2, 7)), ShouldBeTrue)
		})
	})
}

func TestWriteMapDump(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMapDump(&buf, devFrame()); err != nil {
		t.Fatal(err)
	}
	dump := buf.String()
	for _, want := range []string{
		"streets: 10",
		"robot_count: 10",
		"pile_count: 6",
		"--- Board ---",
		"id: 1 street: 9 avenue: 1 direction: North color: red active: true",
		"street: 5 avenue: 9 count: inf",
		"=== END MAP DUMP ===",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q", want)
		}
	}
}

func TestDumpMapToFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	path, err := DumpMapToFile(devFrame())
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "=== MAP DUMP DEBUG") {
		t.Errorf("map.txt starts %q", string(data[:20]))
	}
}

func TestWriteScreenshotHTML(t *testing.T) {
	f := devFrame()
	f.Message = "<saved>"
	var buf bytes.Buffer
	if err := WriteScreenshotHTML(&buf, f); err != nil {
		t.Fatal(err)
	}
	page := buf.String()
	if !strings.Contains(page, `<span class="robot-off">`) || !strings.Contains(page, `<span class="wall">`) {
		t.Error("screenshot does not style robots and walls")
	}
	if strings.Contains(page, "<saved>") || !strings.Contains(page, "&lt;saved&gt;") {
		t.Error("message text not escaped")
	}
}
