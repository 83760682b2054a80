package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// canDrawText reports whether face has a loaded font behind it. Without one
// every text call is skipped and only shapes are drawn.
func canDrawText(face *text.GoTextFace) bool {
	return face != nil && face.Source != nil
}

// drawText draws str with its top-left corner at (x, y)
func (e *EbitenRenderer) drawText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	if !canDrawText(face) {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(screen, str, face, op)
}

// drawTextCentered draws str centered on (cx, cy)
func (e *EbitenRenderer) drawTextCentered(screen *ebiten.Image, str string, cx, cy float64, col color.Color, face *text.GoTextFace) {
	if !canDrawText(face) {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter

	text.Draw(screen, str, face, op)
}

// getTextWidthWithFace returns the width of a string in pixels using the given font face.
func (e *EbitenRenderer) getTextWidthWithFace(str string, face *text.GoTextFace) float64 {
	if !canDrawText(face) {
		return 0
	}
	w, _ := text.Measure(str, face, 0)
	return w
}
