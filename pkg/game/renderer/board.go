package renderer

import (
	"fmt"
	"strings"

	"karelworld/pkg/engine/world"
)

// Text board glyphs
const (
	IconEmpty     = "·"
	IconInfinite  = "∞"
	IconWallV     = "│"
	IconWallH     = "───"
	IconCorner    = "+"
	IconNoWallH   = "   "
	cellWidth     = 3
	labelWidth    = 3
	maxPileDigits = 2
)

var robotIcons = map[world.Direction]string{
	world.North: "^",
	world.West:  "<",
	world.South: "v",
	world.East:  ">",
}

// RobotIcon is the arrow drawn for a robot heading
func RobotIcon(d world.Direction) string {
	if icon, ok := robotIcons[d]; ok {
		return icon
	}
	return "?"
}

// Styler applies a TextStyle; PlainStyle leaves text unchanged
type Styler func(text string, style TextStyle) string

// PlainStyle is a Styler that adds no markup
func PlainStyle(text string, _ TextStyle) string {
	return text
}

// Board lays out a streets x avenues world as text, northmost street first.
// Each intersection is three columns wide followed by its east edge; the
// line above a street row holds that street's north edges. The board edge is
// always drawn, in the wall style where a wall sits on it.
func Board(snap world.Snapshot, streets, avenues int, style Styler) []string {
	if style == nil {
		style = PlainStyle
	}

	robots := make(map[world.Coord]world.Robot)
	for _, r := range snap.Robots() {
		robots[r.Coord()] = r
	}

	lines := make([]string, 0, 2*streets+2)
	for s := streets; s >= 1; s-- {
		lines = append(lines, northEdgeLine(snap, s, avenues, s == streets, style))

		var b strings.Builder
		fmt.Fprintf(&b, "%*d ", labelWidth, s)
		b.WriteString(eastEdge(snap, world.At(s, 0), true, style))
		for a := 1; a <= avenues; a++ {
			c := world.At(s, a)
			b.WriteString(cellText(snap, robots, c, style))
			b.WriteString(eastEdge(snap, c, a == avenues, style))
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, northEdgeLine(snap, 0, avenues, true, style))

	var labels strings.Builder
	labels.WriteString(strings.Repeat(" ", labelWidth+2))
	for a := 1; a <= avenues; a++ {
		labels.WriteString(style(center(fmt.Sprint(a), cellWidth), StyleSubtle))
		labels.WriteString(" ")
	}
	lines = append(lines, strings.TrimRight(labels.String(), " "))
	return lines
}

func northEdgeLine(snap world.Snapshot, street, avenues int, boundary bool, style Styler) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	junction := " "
	if boundary {
		junction = style(IconCorner, StyleGrid)
	}
	b.WriteString(junction)
	for a := 1; a <= avenues; a++ {
		switch {
		case snap.HasWallNorth(world.At(street, a)):
			b.WriteString(style(IconWallH, StyleWall))
		case boundary:
			b.WriteString(style(IconWallH, StyleGrid))
		default:
			b.WriteString(IconNoWallH)
		}
		b.WriteString(junction)
	}
	return b.String()
}

func eastEdge(snap world.Snapshot, c world.Coord, boundary bool, style Styler) string {
	switch {
	case snap.HasWallEast(c):
		return style(IconWallV, StyleWall)
	case boundary:
		return style(IconWallV, StyleGrid)
	default:
		return " "
	}
}

func cellText(snap world.Snapshot, robots map[world.Coord]world.Robot, c world.Coord, style Styler) string {
	if r, ok := robots[c]; ok {
		st := StyleRobot
		if !r.Active {
			st = StyleRobotOff
		}
		return style(center(RobotIcon(r.Direction), cellWidth), st)
	}
	if n, ok := snap.Beeper(c); ok {
		return style(center(PileLabel(n), cellWidth), StyleBeeper)
	}
	return style(center(IconEmpty, cellWidth), StyleGrid)
}

// PileLabel is the short label of a pile: its count, "99+" past two digits,
// or the infinity glyph.
func PileLabel(n world.Beepers) string {
	if n.IsInfinite() {
		return IconInfinite
	}
	label := n.String()
	if len(label) > maxPileDigits {
		return "99+"
	}
	return label
}

// center pads s with spaces to width runes, extra space on the right
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
