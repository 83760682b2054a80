// Package geometry converts between lattice coordinates and window pixels and
// hit-tests pointer positions against cells and wall edges.
package geometry

import (
	"math"

	"karelworld/pkg/engine/world"
)

// Hit-test tolerances, as fractions of the cell pitch with pixel floors.
const (
	cellPickRadius = 0.40

	vwallHalfWidthMin  = 24.0
	vwallHalfWidthFrac = 0.42
	vwallEndPadMin     = 18.0
	vwallEndPadFrac    = 0.30

	hwallToleranceMin  = 10.0
	hwallToleranceFrac = 0.18
)

// Geometry maps a streets x avenues board into a square drawing area of the
// given height, inset on every side. It is a value type; copies are
// independent.
type Geometry struct {
	streets int
	avenues int
	height  float64
	inset   float64
}

// New creates the layout for a board drawn into a height x height area
func New(streets, avenues int, height, inset float64) Geometry {
	return Geometry{streets: streets, avenues: avenues, height: height, inset: inset}
}

// Streets returns the number of streets on the board
func (g Geometry) Streets() int { return g.streets }

// Avenues returns the number of avenues on the board
func (g Geometry) Avenues() int { return g.avenues }

// Height returns the drawing-area height in pixels
func (g Geometry) Height() float64 { return g.height }

// Inset returns the margin around the board in pixels
func (g Geometry) Inset() float64 { return g.inset }

// SetHeight re-lays the board out for a new drawing height
func (g *Geometry) SetHeight(height float64) {
	g.height = height
}

func (g Geometry) left() float64   { return g.inset }
func (g Geometry) top() float64    { return g.inset }
func (g Geometry) bottom() float64 { return g.height - g.inset }

// Right is the x coordinate of the board's right edge
func (g Geometry) Right() float64 { return g.height }

// ScaleFactor is the pixel pitch of one cell
func (g Geometry) ScaleFactor() float64 {
	if g.streets <= 0 {
		return 0
	}
	return (g.bottom() - g.top()) / float64(g.streets)
}

// ToPixel returns the screen position of a (possibly fractional) lattice
// point. Avenues map to x; streets map to y with higher streets drawn higher.
func (g Geometry) ToPixel(street, avenue float64) (x, y float64) {
	scale := g.ScaleFactor()
	return g.left() + avenue*scale, g.bottom() - street*scale
}

// CellCenter returns the screen position of an intersection
func (g Geometry) CellCenter(c world.Coord) (x, y float64) {
	return g.ToPixel(float64(c.Street), float64(c.Avenue))
}

// Segment is a line between two screen points
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// EastWallSegment is the on-screen edge east of c, spanning half a block
// above and below the street.
func (g Geometry) EastWallSegment(c world.Coord) Segment {
	s, a := float64(c.Street), float64(c.Avenue)
	x1, y1 := g.ToPixel(s-0.5, a+0.5)
	x2, y2 := g.ToPixel(s+0.5, a+0.5)
	return Segment{x1, y1, x2, y2}
}

// NorthWallSegment is the on-screen edge north of c, spanning half a block
// either side of the avenue.
func (g Geometry) NorthWallSegment(c world.Coord) Segment {
	s, a := float64(c.Street), float64(c.Avenue)
	x1, y1 := g.ToPixel(s+0.5, a-0.5)
	x2, y2 := g.ToPixel(s+0.5, a+0.5)
	return Segment{x1, y1, x2, y2}
}

// NearestCell returns the intersection closest to (px, py), or false when
// the pointer is farther than 40% of a cell pitch from every center.
func (g Geometry) NearestCell(px, py float64) (world.Coord, bool) {
	sf := g.ScaleFactor()
	if sf <= 0 {
		return world.Coord{}, false
	}

	var best world.Coord
	bestDist2 := math.Inf(1)
	for street := 1; street <= g.streets; street++ {
		for avenue := 1; avenue <= g.avenues; avenue++ {
			cx, cy := g.ToPixel(float64(street), float64(avenue))
			dx, dy := px-cx, py-cy
			if d2 := dx*dx + dy*dy; d2 < bestDist2 {
				bestDist2 = d2
				best = world.At(street, avenue)
			}
		}
	}

	radius := sf * cellPickRadius
	if bestDist2 > radius*radius {
		return world.Coord{}, false
	}
	return best, true
}

// VerticalWallBand returns the clickable half-width and end padding of an
// east wall edge.
func (g Geometry) VerticalWallBand() (halfWidth, endPad float64) {
	sf := g.ScaleFactor()
	return math.Max(vwallHalfWidthMin, sf*vwallHalfWidthFrac), math.Max(vwallEndPadMin, sf*vwallEndPadFrac)
}

// HorizontalWallTolerance returns the accepted pointer distance to a north
// wall edge.
func (g Geometry) HorizontalWallTolerance() float64 {
	return math.Max(hwallToleranceMin, g.ScaleFactor()*hwallToleranceFrac)
}

// NearestVerticalWallEdge returns the east-wall key whose rectangular band
// contains (px, py). Overlapping bands resolve to the smallest horizontal
// distance from the wall line.
func (g Geometry) NearestVerticalWallEdge(px, py float64) (world.Coord, bool) {
	if g.ScaleFactor() <= 0 {
		return world.Coord{}, false
	}
	halfWidth, endPad := g.VerticalWallBand()

	var best world.Coord
	found := false
	bestScore := math.Inf(1)
	for street := 1; street <= g.streets; street++ {
		for avenue := 0; avenue <= g.avenues; avenue++ {
			c := world.At(street, avenue)
			seg := g.EastWallSegment(c)
			xLine := (seg.X1 + seg.X2) / 2
			yMin := math.Min(seg.Y1, seg.Y2) - endPad
			yMax := math.Max(seg.Y1, seg.Y2) + endPad

			inside := px >= xLine-halfWidth && px <= xLine+halfWidth && py >= yMin && py <= yMax
			if !inside {
				continue
			}
			if score := math.Abs(px - xLine); score < bestScore {
				bestScore = score
				best = c
				found = true
			}
		}
	}
	return best, found
}

// NearestHorizontalWallEdge returns the north-wall key whose edge segment is
// closest to (px, py), provided it lies within the horizontal tolerance.
func (g Geometry) NearestHorizontalWallEdge(px, py float64) (world.Coord, bool) {
	if g.ScaleFactor() <= 0 {
		return world.Coord{}, false
	}

	var best world.Coord
	bestDist := math.Inf(1)
	for street := 0; street <= g.streets; street++ {
		for avenue := 1; avenue <= g.avenues; avenue++ {
			c := world.At(street, avenue)
			seg := g.NorthWallSegment(c)
			if d := PointToSegmentDistance(px, py, seg); d < bestDist {
				bestDist = d
				best = c
			}
		}
	}

	if bestDist > g.HorizontalWallTolerance() {
		return world.Coord{}, false
	}
	return best, true
}

// PointToSegmentDistance is the Euclidean distance from (px, py) to the
// closest point of seg.
func PointToSegmentDistance(px, py float64, seg Segment) float64 {
	vx, vy := seg.X2-seg.X1, seg.Y2-seg.Y1
	wx, wy := px-seg.X1, py-seg.Y1

	c1 := vx*wx + vy*wy
	if c1 <= 0 {
		return math.Hypot(px-seg.X1, py-seg.Y1)
	}
	c2 := vx*vx + vy*vy
	if c2 <= c1 {
		return math.Hypot(px-seg.X2, py-seg.Y2)
	}
	t := c1 / c2
	return math.Hypot(px-(seg.X1+t*vx), py-(seg.Y1+t*vy))
}
