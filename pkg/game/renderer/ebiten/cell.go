package ebiten

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/game/editor"
	"karelworld/pkg/game/state"
)

// drawHover draws the ghost preview of what a click would do
func (e *EbitenRenderer) drawHover(screen *ebiten.Image, f state.Frame) {
	h := f.Hover
	if !h.Valid() {
		return
	}
	g := f.Geometry
	switch h.Kind {
	case editor.TargetCell:
		e.drawHoverCell(screen, g, h)
	case editor.TargetEastWall:
		seg := g.EastWallSegment(h.Coord)
		e.drawHoverWall(screen, g, seg, true, h.Action)
	case editor.TargetNorthWall:
		seg := g.NorthWallSegment(h.Coord)
		e.drawHoverWall(screen, g, seg, false, h.Action)
	}
}

func (e *EbitenRenderer) drawHoverCell(screen *ebiten.Image, g geometry.Geometry, h editor.Preview) {
	cx, cy := g.CellCenter(h.Coord)
	size := g.ScaleFactor() * ghostCellFrac
	x, y := cx-size/2, cy-size/2
	colors := ghostColors(h.Action)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), colors.fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(size), float32(size), 1, colors.border, false)

	if glyph := cellGlyph(h.Action); glyph != "" {
		e.drawTextCentered(screen, glyph, cx, cy, colors.line, e.getSansFontFace(fontSizeSmall))
	}
}

func cellGlyph(a editor.HoverAction) string {
	switch a {
	case editor.HoverAdd:
		return "+"
	case editor.HoverRemove:
		return "-"
	case editor.HoverSetInfinity:
		return "∞"
	case editor.HoverClear:
		return "×"
	case editor.HoverNoop:
		return "·"
	default:
		return ""
	}
}

// drawHoverWall draws a padded band around a wall edge, the edge itself and
// a short label.
func (e *EbitenRenderer) drawHoverWall(screen *ebiten.Image, g geometry.Geometry, seg geometry.Segment, vertical bool, a editor.HoverAction) {
	sf := g.ScaleFactor()
	half := math.Max(ghostWallHalfMin, sf*ghostWallHalfFrac)
	pad := math.Max(ghostWallPadMin, sf*ghostWallPadFrac)
	colors := ghostColors(a)

	var x, y, w, h float64
	if vertical {
		xLine := (seg.X1 + seg.X2) / 2
		x, w = xLine-half, 2*half
		y = math.Min(seg.Y1, seg.Y2) - pad
		h = math.Abs(seg.Y2-seg.Y1) + 2*pad
	} else {
		yLine := (seg.Y1 + seg.Y2) / 2
		y, h = yLine-half, 2*half
		x = math.Min(seg.X1, seg.X2) - pad
		w = math.Abs(seg.X2-seg.X1) + 2*pad
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colors.fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colors.border, false)
	line(screen, seg.X1, seg.Y1, seg.X2, seg.Y2, ghostWallLineWidth, colors.line)

	e.drawText(screen, wallLabel(vertical, a), x+3, y+1, colors.line, e.getSansFontFace(fontSizeSmall))
}

func wallLabel(vertical bool, a editor.HoverAction) string {
	axis := "H"
	if vertical {
		axis = "V"
	}
	switch a {
	case editor.HoverAdd:
		return "+" + axis
	case editor.HoverRemove:
		return "-" + axis
	default:
		return axis
	}
}
