package ebiten

import (
	"errors"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"karelworld/pkg/game/config"
	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

// New creates a window renderer that drives s
func New(s *state.Session, window config.Window, title string) *EbitenRenderer {
	return &EbitenRenderer{
		session: s,
		window:  window,
		title:   title,
	}
}

// Init loads fonts and builds the key table. Font errors are logged; the
// board is still drawn without text.
func (e *EbitenRenderer) Init() {
	if err := e.loadFonts(); err != nil {
		log.Printf("fonts: %v", err)
	}
	e.keys = keyTable()
}

// Run opens the window and blocks until it is closed
func (e *EbitenRenderer) Run() error {
	ebiten.SetWindowSize(e.window.Size, e.window.Size)
	ebiten.SetWindowTitle(e.title)
	if e.window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(e.window.FrameRate)

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Layout re-lays the board out for the window height (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.session.Resize(float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Clear is a no-op; Draw repaints the whole window every frame
func (e *EbitenRenderer) Clear() {}

// StyleText returns text unchanged; colors are chosen at draw time
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// ShowMessage shows msg in the window's message bar
func (e *EbitenRenderer) ShowMessage(msg string) {
	e.session.SetMessage(strings.TrimSpace(msg), state.MessageShort)
}

// GetViewportSize returns the board size (streets, avenues)
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	g := e.session.Geometry()
	return g.Streets(), g.Avenues()
}
