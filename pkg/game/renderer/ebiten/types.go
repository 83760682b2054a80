package ebiten

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"karelworld/pkg/game/config"
	"karelworld/pkg/game/state"
)

// keyCode pairs an Ebiten key with the input binding code it produces
type keyCode struct {
	key  ebiten.Key
	code string
}

// EbitenRenderer is the Ebiten-based window. It drives the session from
// Ebiten's Update and draws the last captured Frame in Draw.
type EbitenRenderer struct {
	session *state.Session
	window  config.Window
	title   string

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource // Monospace font for labels on the board
	sansFontSource *text.GoTextFaceSource // Sans-serif font for HUD and editor text

	// Cached font faces, keyed by size
	faces map[faceKey]*text.GoTextFace

	// Frame captured by the last Update, drawn by Draw
	frame      state.Frame
	frameValid bool
	frameMutex sync.RWMutex

	keys []keyCode

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}

// faceKey identifies a cached face
type faceKey struct {
	mono bool
	size float64
}
