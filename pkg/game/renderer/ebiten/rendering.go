package ebiten

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"karelworld/pkg/engine/geometry"
	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Draw renders the last captured frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	f, ok := e.currentFrame()
	if !ok {
		return
	}
	g := f.Geometry
	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	e.drawGrid(screen, g)
	e.drawBoundary(screen, g)
	e.drawAxisLabels(screen, g)
	e.drawWalls(screen, g, f.Snapshot)
	e.drawBeepers(screen, g, f.Snapshot)
	e.drawRobots(screen, g, f.Snapshot)
	e.drawHUD(screen, f)

	if f.Editing {
		e.drawHover(screen, f)
		if f.Legend {
			e.drawLegend(screen)
		}
		e.drawStatusBar(screen, f, width, height)
	}
	e.drawMessageBar(screen, f, width, height)
}

func line(screen *ebiten.Image, x1, y1, x2, y2, width float64, col color.Color) {
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

func (e *EbitenRenderer) drawGrid(screen *ebiten.Image, g geometry.Geometry) {
	streets, avenues := float64(g.Streets()), float64(g.Avenues())
	for s := 1; s <= g.Streets(); s++ {
		x1, y1 := g.ToPixel(float64(s), 0.5)
		x2, y2 := g.ToPixel(float64(s), avenues+0.5)
		line(screen, x1, y1, x2, y2, gridLineWidth, colorGrid)
	}
	for a := 1; a <= g.Avenues(); a++ {
		x1, y1 := g.ToPixel(0.5, float64(a))
		x2, y2 := g.ToPixel(streets+0.5, float64(a))
		line(screen, x1, y1, x2, y2, gridLineWidth, colorGrid)
	}
}

// drawBoundary draws the west and south edges of the world
func (e *EbitenRenderer) drawBoundary(screen *ebiten.Image, g geometry.Geometry) {
	x, y := g.ToPixel(0.5, 0.5)
	line(screen, x, 0, x, y, boundaryLineWidth, colorInk)
	line(screen, x, y, g.Right()+g.Inset(), y, boundaryLineWidth, colorInk)
}

func (e *EbitenRenderer) drawAxisLabels(screen *ebiten.Image, g geometry.Geometry) {
	face := e.getMonoFontFace(fontSizeSmall)
	for s := 1; s <= g.Streets(); s++ {
		x, y := g.ToPixel(float64(s), 0.2)
		e.drawTextCentered(screen, fmt.Sprint(s), x, y, colorInk, face)
	}
	for a := 1; a <= g.Avenues(); a++ {
		x, y := g.ToPixel(0.2, float64(a))
		e.drawTextCentered(screen, fmt.Sprint(a), x, y, colorInk, face)
	}
}

func (e *EbitenRenderer) drawWalls(screen *ebiten.Image, g geometry.Geometry, snap world.Snapshot) {
	for _, c := range snap.WallsNorth() {
		seg := g.NorthWallSegment(c)
		line(screen, seg.X1, seg.Y1, seg.X2, seg.Y2, wallThickness, colorInk)
	}
	for _, c := range snap.WallsEast() {
		seg := g.EastWallSegment(c)
		line(screen, seg.X1, seg.Y1, seg.X2, seg.Y2, wallThickness, colorInk)
	}
}

func (e *EbitenRenderer) drawBeepers(screen *ebiten.Image, g geometry.Geometry, snap world.Snapshot) {
	r := math.Min(g.ScaleFactor()*beeperRadiusFrac, beeperRadiusMax)
	face := e.getMonoFontFace(fontSizeBeeper)
	for _, p := range snap.Beepers() {
		x, y := g.CellCenter(p.Coord)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), colorInk, true)
		e.drawTextCentered(screen, renderer.PileLabel(p.Count), x, y, colorBeeperText, face)
	}
}

func (e *EbitenRenderer) drawRobots(screen *ebiten.Image, g geometry.Geometry, snap world.Snapshot) {
	size := math.Min(g.ScaleFactor()*robotSizeFrac, robotSizeMax)
	for _, r := range snap.Robots() {
		x, y := g.CellCenter(r.Coord())

		body := colorRobotBody
		if !r.Active {
			body = colorRobotOff
		}
		drawTriangle(screen, robotTriangle(r.Direction, x, y, size/2), body)

		badgeR := math.Max(badgeRadiusMin, math.Min(size*badgeFrac, badgeRadiusMax))
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(badgeR), badgeColor(r.Color, r.Active), true)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(badgeR), 1, colorInk, true)
	}
}

// robotTriangle returns the arrow for a robot heading: its tip is r pixels
// ahead of the center.
func robotTriangle(d world.Direction, x, y, r float64) [3][2]float64 {
	ds, da := d.Delta()
	// Streets grow upward on screen
	dx, dy := float64(da), -float64(ds)
	px, py := -dy, dx
	back := r * 0.5
	half := r * 0.6
	return [3][2]float64{
		{x + dx*r, y + dy*r},
		{x - dx*back + px*half, y - dy*back + py*half},
		{x - dx*back - px*half, y - dy*back - py*half},
	}
}

func drawTriangle(screen *ebiten.Image, pts [3][2]float64, col color.RGBA) {
	cr, cg, cb, ca := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	vs := make([]ebiten.Vertex, 0, 3)
	for _, p := range pts {
		vs = append(vs, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, []uint16{0, 1, 2}, whiteSubImage, op)
}

func (e *EbitenRenderer) drawHUD(screen *ebiten.Image, f state.Frame) {
	face := e.getSansFontFace(fontSizeSmall)
	speed := gotext.Get("Speed %d", f.Speed)
	e.drawText(screen, speed, hudX, hudY, colorInk, face)

	x := math.Max(hudSubtleX, hudX+e.getTextWidthWithFace(speed, face)+20)
	e.drawText(screen, gotext.Get("ESC to close"), x, hudY, colorHUDSubtle, face)
}

func (e *EbitenRenderer) drawLegend(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, legendX, legendY, legendW, legendH, colorLegendBg, false)
	vector.StrokeRect(screen, legendX, legendY, legendW, legendH, 1, colorInk, false)

	e.drawText(screen, state.LegendTitle(), legendX+legendPadding, legendY+8, colorInk, e.getSansFontFace(fontSizeOverlay))

	face := e.getSansFontFace(fontSizeSmall)
	for i, l := range state.LegendLines() {
		y := float64(legendY + legendLineY + i*legendLineGap)
		e.drawText(screen, l, legendX+legendPadding, y, colorLegendText, face)
	}
}

func (e *EbitenRenderer) drawStatusBar(screen *ebiten.Image, f state.Frame, width, height float64) {
	y := height - statusBarHeight
	vector.DrawFilledRect(screen, 0, float32(y), float32(width), statusBarHeight, colorStatusBg, false)
	e.drawText(screen, f.StatusLine(), 10, y+3, colorStatusText, e.getSansFontFace(fontSizeStatus))
}

func (e *EbitenRenderer) drawMessageBar(screen *ebiten.Image, f state.Frame, width, height float64) {
	if f.Message == "" {
		return
	}
	y := height - messageBarOffset
	vector.DrawFilledRect(screen, 0, float32(y), float32(width), messageBarHeight, colorMessageBg, false)

	col := colorInk
	if f.MessageAlert {
		col = colorAlertText
	}
	e.drawText(screen, f.Message, 10, y+4, col, e.getSansFontFace(fontSizeSmall))
}
