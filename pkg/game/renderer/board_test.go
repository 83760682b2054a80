package renderer

import (
	"strings"
	"testing"

	"karelworld/pkg/engine/world"
)

func TestBoard_Layout(t *testing.T) {
	st := world.NewState()
	st.AddRobot(1, 1, world.East, world.ColorRed)
	if err := st.PlaceBeeper(world.At(2, 2), 5); err != nil {
		t.Fatal(err)
	}
	st.PlaceWallEast(world.At(2, 1))
	st.PlaceWallNorth(world.At(1, 2))

	got := Board(st.Snapshot(), 2, 2, nil)
	want := []string{
		"    +───+───+",
		"  2 │ · │ 5 │",
		"         ─── ",
		"  1 │ >   · │",
		"    +───+───+",
		"      1   2",
	}
	if len(got) != len(want) {
		t.Fatalf("Board() has %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBoard_RobotHidesPile(t *testing.T) {
	st := world.NewState()
	st.AddRobot(1, 1, world.North, world.ColorBlue)
	if err := st.PlaceBeeper(world.At(1, 1), 3); err != nil {
		t.Fatal(err)
	}
	row := Board(st.Snapshot(), 1, 1, nil)[1]
	if !strings.Contains(row, " ^ ") || strings.Contains(row, "3") {
		t.Errorf("row = %q, want the robot drawn over the pile", row)
	}
}

func TestBoard_Styles(t *testing.T) {
	st := world.NewState()
	id := st.AddRobot(1, 1, world.South, world.ColorNone)
	if err := st.TurnOffRobot(id); err != nil {
		t.Fatal(err)
	}
	st.PlaceWallEast(world.At(1, 0))

	var seen []TextStyle
	record := func(text string, style TextStyle) string {
		seen = append(seen, style)
		return text
	}
	Board(st.Snapshot(), 1, 1, record)

	want := map[TextStyle]bool{StyleRobotOff: false, StyleWall: false, StyleGrid: false, StyleSubtle: false}
	for _, s := range seen {
		if _, ok := want[s]; ok {
			want[s] = true
		}
		if s == StyleRobot {
			t.Error("inactive robot drawn in the active style")
		}
	}
	for s, ok := range want {
		if !ok {
			t.Errorf("style %d never used", s)
		}
	}
}

func TestPileLabel(t *testing.T) {
	tests := []struct {
		n    world.Beepers
		want string
	}{
		{1, "1"},
		{42, "42"},
		{100, "99+"},
		{world.Infinite, IconInfinite},
	}
	for _, tt := range tests {
		if got := PileLabel(tt.n); got != tt.want {
			t.Errorf("PileLabel(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRobotIcon(t *testing.T) {
	for _, d := range world.AllDirections() {
		if RobotIcon(d) == "?" {
			t.Errorf("no icon for %v", d)
		}
	}
	if RobotIcon(world.Direction(99)) != "?" {
		t.Error("unknown direction should draw ?")
	}
}
