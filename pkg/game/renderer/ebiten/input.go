package ebiten

import (
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "karelworld/pkg/engine/input"
	"karelworld/pkg/game/devtools"
	"karelworld/pkg/game/state"
)

// keyTable lists every key the window reports to the input bindings:
// letters, function keys and the named keys the default bindings use.
func keyTable() []keyCode {
	var keys []keyCode
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		keys = append(keys, keyCode{key: k, code: strings.ToLower(k.String())})
	}
	for k := ebiten.KeyF1; k <= ebiten.KeyF12; k++ {
		keys = append(keys, keyCode{key: k, code: strings.ToLower(k.String())})
	}
	keys = append(keys,
		keyCode{key: ebiten.KeyEscape, code: "escape"},
		keyCode{key: ebiten.KeyBracketLeft, code: "["},
		keyCode{key: ebiten.KeyBracketRight, code: "]"},
	)
	return keys
}

// Update handles input and advances the session (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	now := time.Now()
	for _, k := range e.keys {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		raw := engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: k.code, Timestamp: now}
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
		if intent.Action != engineinput.ActionNone {
			e.session.HandleAction(intent.Action)
		}
	}

	e.session.Tick(now, e.pointer())
	if e.session.Quit() {
		return ebiten.Termination
	}

	f := e.session.Frame()
	e.RenderFrame(f)
	e.runDevTools(f)
	return nil
}

// pointer samples the mouse
func (e *EbitenRenderer) pointer() engineinput.Pointer {
	x, y := ebiten.CursorPosition()
	return engineinput.Pointer{
		X:     float64(x),
		Y:     float64(y),
		Left:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
}

// runDevTools writes the map dump or screenshot the user asked for
func (e *EbitenRenderer) runDevTools(f state.Frame) {
	if e.session.TakeDumpRequest() {
		path, err := devtools.DumpMapToFile(f)
		if err != nil {
			log.Printf("map dump: %v", err)
		} else {
			log.Printf("map dumped to %s", path)
			e.ShowMessage(path)
		}
	}
	if e.session.TakeScreenshotRequest() {
		path, err := devtools.SaveScreenshotHTML(f)
		if err != nil {
			log.Printf("screenshot: %v", err)
		} else {
			log.Printf("screenshot saved to %s", path)
			e.ShowMessage(path)
		}
	}
}
