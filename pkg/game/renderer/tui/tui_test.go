package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	. "github.com/smartystreets/goconvey/convey"

	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

func newTestRenderer() (*TUIRenderer, *bytes.Buffer) {
	color.Disable()
	var out bytes.Buffer
	t := &TUIRenderer{Out: &out}
	t.Init()
	return t, &out
}

func frameOf(st *world.State, speed int) state.Frame {
	return state.Frame{
		Snapshot: st.Snapshot(),
		Geometry: geometry.New(3, 3, 400, 30),
		Speed:    speed,
	}
}

func TestTUIRenderer_RenderFrame(t *testing.T) {
	Convey("Given a text renderer and a small world", t, func() {
		r, out := newTestRenderer()
		st := world.NewState()
		st.AddRobot(2, 2, world.West, world.ColorRed)

		Convey("the first frame prints the board and the HUD", func() {
			r.RenderFrame(frameOf(st, 40))
			text := out.String()
			So(text, ShouldContainSubstring, " < ")
			So(text, ShouldContainSubstring, "Speed 40")
			So(text, ShouldContainSubstring, "Robots 1")
			So(text, ShouldNotContainSubstring, clearScreen)
		})

		Convey("an unchanged frame prints nothing", func() {
			r.RenderFrame(frameOf(st, 40))
			out.Reset()
			r.RenderFrame(frameOf(st, 40))
			So(out.Len(), ShouldEqual, 0)

			Convey("but a speed change redraws", func() {
				r.RenderFrame(frameOf(st, 50))
				So(out.String(), ShouldContainSubstring, "Speed 50")
			})

			Convey("and so does a world change", func() {
				So(st.PlaceBeeper(world.At(3, 3), world.Infinite), ShouldBeNil)
				r.RenderFrame(frameOf(st, 40))
				So(out.String(), ShouldContainSubstring, renderer.IconInfinite)
			})
		})

		Convey("a status message follows the HUD", func() {
			f := frameOf(st, 40)
			f.Message = "Loaded: worlds/maze.txt"
			r.RenderFrame(f)
			lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			So(lines[len(lines)-1], ShouldEqual, "Loaded: worlds/maze.txt")
		})

		Convey("ClearScreen clears before drawing", func() {
			r.ClearScreen = true
			r.RenderFrame(frameOf(st, 40))
			So(out.String(), ShouldStartWith, clearScreen)
		})
	})
}

func TestTUIRenderer_StyleTextPlainWhenDisabled(t *testing.T) {
	r, _ := newTestRenderer()
	if got := r.StyleText("│", renderer.StyleWall); got != "│" {
		t.Errorf("StyleText() = %q with color disabled", got)
	}
}
