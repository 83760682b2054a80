package world

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDirection_LeftRing(t *testing.T) {
	want := map[Direction]Direction{North: West, West: South, South: East, East: North}
	for from, to := range want {
		if got := from.Left(); got != to {
			t.Errorf("%v.Left() = %v, want %v", from, got, to)
		}
		if got := to.Right(); got != from {
			t.Errorf("%v.Right() = %v, want %v", to, got, from)
		}
	}
}

func TestTurnLeftRobot_FourTurnsRestoreHeading(t *testing.T) {
	for _, dir := range AllDirections() {
		s := NewState()
		id := s.AddRobot(1, 1, dir, ColorRed)
		for i := 0; i < 4; i++ {
			if err := s.TurnLeftRobot(id); err != nil {
				t.Fatalf("TurnLeftRobot: %v", err)
			}
		}
		r, _ := s.Robot(id)
		if r.Direction != dir {
			t.Errorf("after four left turns from %v heading = %v", dir, r.Direction)
		}
	}
}

func TestMoveRobot_NStepsEqualsNSingleSteps(t *testing.T) {
	for _, dir := range AllDirections() {
		for n := 1; n <= 6; n++ {
			a := NewState()
			b := NewState()
			ida := a.AddRobot(5, 5, dir, ColorNone)
			idb := b.AddRobot(5, 5, dir, ColorNone)

			if err := a.MoveRobot(ida, n); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < n; i++ {
				if err := b.MoveRobot(idb, 1); err != nil {
					t.Fatal(err)
				}
			}
			ra, _ := a.Robot(ida)
			rb, _ := b.Robot(idb)
			if ra.Coord() != rb.Coord() || ra.Direction != rb.Direction {
				t.Errorf("%v x%d: bulk move = %+v, stepwise = %+v", dir, n, ra, rb)
			}
		}
	}
}

func TestMoveRobot_Deltas(t *testing.T) {
	cases := []struct {
		dir  Direction
		want Coord
	}{
		{North, At(4, 3)},
		{South, At(2, 3)},
		{East, At(3, 4)},
		{West, At(3, 2)},
	}
	for _, tc := range cases {
		s := NewState()
		id := s.AddRobot(3, 3, tc.dir, ColorNone)
		if err := s.MoveRobot(id, 1); err != nil {
			t.Fatal(err)
		}
		r, _ := s.Robot(id)
		if r.Coord() != tc.want {
			t.Errorf("move %v from (3, 3) = %v, want %v", tc.dir, r.Coord(), tc.want)
		}
	}
}

func TestMoveRobot_NonPositiveStepsMoveOnce(t *testing.T) {
	s := NewState()
	id := s.AddRobot(1, 1, East, ColorNone)
	if err := s.MoveRobot(id, 0); err != nil {
		t.Fatal(err)
	}
	r, _ := s.Robot(id)
	if r.Avenue != 2 {
		t.Errorf("avenue = %d, want 2", r.Avenue)
	}
}

func TestTurnedOffRobotIsInert(t *testing.T) {
	s := NewState()
	id := s.AddRobot(2, 2, North, ColorBlue)
	if err := s.TurnOffRobot(id); err != nil {
		t.Fatal(err)
	}
	if err := s.MoveRobot(id, 1); !errors.Is(err, ErrRobotInactive) {
		t.Errorf("MoveRobot on inactive robot err = %v, want ErrRobotInactive", err)
	}
	if err := s.TurnLeftRobot(id); !errors.Is(err, ErrRobotInactive) {
		t.Errorf("TurnLeftRobot on inactive robot err = %v, want ErrRobotInactive", err)
	}
	snap := s.Snapshot()
	if snap.RobotCount() != 1 || snap.Robots()[0].Active {
		t.Errorf("turned-off robot should stay in the world, inactive: %+v", snap.Robots())
	}
}

func TestUnknownRobot(t *testing.T) {
	s := NewState()
	id := s.AddRobot(1, 1, North, ColorNone)
	s.Clear()
	if err := s.MoveRobot(id, 1); !errors.Is(err, ErrUnknownRobot) {
		t.Errorf("MoveRobot after Clear err = %v, want ErrUnknownRobot", err)
	}
}

func TestBeeperSequences_ZeroIsAbsent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := At(4, 4)
	for trial := 0; trial < 200; trial++ {
		s := NewState()
		var model Beepers
		present := false
		for op := 0; op < 20; op++ {
			if rng.Intn(3) == 0 {
				s.DeleteBeeper(c)
				present = false
				continue
			}
			var n Beepers
			switch rng.Intn(4) {
			case 0:
				n = 0
			case 1:
				n = Infinite
			default:
				n = Beepers(rng.Intn(5))
			}
			if err := s.PlaceBeeper(c, n); err != nil {
				t.Fatal(err)
			}
			model, present = n, n != 0
		}
		got, ok := s.Beeper(c)
		if ok != present || (ok && got != model) {
			t.Fatalf("trial %d: Beeper = (%v, %v), want (%v, %v)", trial, got, ok, model, present)
		}
		if ok && got == 0 {
			t.Fatalf("trial %d: stored a zero pile", trial)
		}
	}
}

func TestPlaceBeeper_RejectsNegative(t *testing.T) {
	s := NewState()
	if err := s.PlaceBeeper(At(1, 1), -3); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("PlaceBeeper(-3) err = %v, want ErrNegativeCount", err)
	}
	if _, ok := s.Beeper(At(1, 1)); ok {
		t.Error("rejected pile was stored")
	}
}

func TestWalls_PlaceRemove(t *testing.T) {
	s := NewState()
	s.PlaceWallEast(At(2, 4))
	s.PlaceWallNorth(At(3, 1))
	if !s.HasWallEast(At(2, 4)) || !s.HasWallNorth(At(3, 1)) {
		t.Fatal("walls not stored")
	}
	if s.HasWallNorth(At(2, 4)) || s.HasWallEast(At(3, 1)) {
		t.Error("north and east wall sets must be independent")
	}
	s.RemoveWallEast(At(2, 4))
	s.RemoveWallNorth(At(3, 1))
	if s.HasWallEast(At(2, 4)) || s.HasWallNorth(At(3, 1)) {
		t.Error("walls not removed")
	}
}

func TestSnapshot_DoesNotAliasState(t *testing.T) {
	s := NewState()
	id := s.AddRobot(1, 1, East, ColorGreen)
	_ = s.PlaceBeeper(At(2, 2), 3)
	s.PlaceWallEast(At(1, 1))

	snap := s.Snapshot()

	_ = s.MoveRobot(id, 3)
	_ = s.PlaceBeeper(At(2, 2), 9)
	s.PlaceWallNorth(At(5, 5))
	s.RemoveWallEast(At(1, 1))
	s.Clear()

	if snap.RobotCount() != 1 || snap.Robots()[0].Avenue != 1 {
		t.Errorf("snapshot robots changed: %+v", snap.Robots())
	}
	if n, ok := snap.Beeper(At(2, 2)); !ok || n != 3 {
		t.Errorf("snapshot beeper = (%v, %v), want (3, true)", n, ok)
	}
	if !snap.HasWallEast(At(1, 1)) || snap.HasWallNorth(At(5, 5)) {
		t.Error("snapshot walls changed")
	}

	robots := snap.Robots()
	robots[0].Street = 99
	if snap.Robots()[0].Street == 99 {
		t.Error("Robots() exposed internal storage")
	}
}

func TestSnapshot_SortedListings(t *testing.T) {
	s := NewState()
	_ = s.PlaceBeeper(At(5, 5), Infinite)
	_ = s.PlaceBeeper(At(3, 2), 1)
	_ = s.PlaceBeeper(At(3, 1), 2)
	s.PlaceWallEast(At(4, 1))
	s.PlaceWallEast(At(2, 9))

	piles := s.Snapshot().Beepers()
	want := []Coord{At(3, 1), At(3, 2), At(5, 5)}
	for i, p := range piles {
		if p.Coord != want[i] {
			t.Errorf("Beepers()[%d] = %v, want %v", i, p.Coord, want[i])
		}
	}
	east := s.Snapshot().WallsEast()
	if len(east) != 2 || east[0] != At(2, 9) || east[1] != At(4, 1) {
		t.Errorf("WallsEast() = %v", east)
	}
}

func TestClear_RemovesEverything(t *testing.T) {
	s := NewState()
	s.AddRobot(1, 1, North, ColorNone)
	_ = s.PlaceBeeper(At(1, 1), 2)
	s.PlaceWallEast(At(1, 1))
	s.PlaceWallNorth(At(1, 1))
	s.Clear()

	snap := s.Snapshot()
	if snap.RobotCount() != 0 || len(snap.Beepers()) != 0 || len(snap.WallsEast()) != 0 || len(snap.WallsNorth()) != 0 {
		t.Errorf("world not empty after Clear: %+v", snap)
	}
}

func TestVersion_IncrementsOnlyOnChange(t *testing.T) {
	s := NewState()
	v0 := s.Version()
	s.RemoveWallEast(At(1, 1))
	s.DeleteBeeper(At(1, 1))
	if s.Version() != v0 {
		t.Errorf("no-op mutations changed version %d -> %d", v0, s.Version())
	}
	s.PlaceWallEast(At(1, 1))
	if s.Version() != v0+1 {
		t.Errorf("Version() = %d, want %d", s.Version(), v0+1)
	}
}

func TestParseColorAndDirection(t *testing.T) {
	if c, err := ParseColor("Purple"); err != nil || c != ColorPurple {
		t.Errorf("ParseColor(Purple) = %v, %v", c, err)
	}
	if _, err := ParseColor("mauve"); err == nil {
		t.Error("ParseColor(mauve) err = nil")
	}
	if d, err := ParseDirection("w"); err != nil || d != West {
		t.Errorf("ParseDirection(w) = %v, %v", d, err)
	}
}
