// Package ebiten provides the Ebiten-based window for Karel worlds.
package ebiten

import (
	"image/color"

	"karelworld/pkg/engine/world"
	"karelworld/pkg/game/editor"
)

// Color palette
var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorGrid       = color.RGBA{220, 220, 220, 255}
	colorInk        = color.RGBA{0, 0, 0, 255}
	colorHUDSubtle  = color.RGBA{80, 80, 80, 255}
	colorBeeperText = color.RGBA{255, 255, 255, 255}
	colorRobotBody  = color.RGBA{60, 60, 60, 255}
	colorRobotOff   = color.RGBA{170, 170, 170, 255}
	colorNoBadge    = color.RGBA{180, 180, 180, 255}

	colorLegendBg   = color.RGBA{255, 255, 255, 220}
	colorLegendText = color.RGBA{20, 20, 20, 255}
	colorStatusBg   = color.RGBA{30, 30, 30, 230}
	colorStatusText = color.RGBA{255, 255, 255, 255}
	colorMessageBg  = color.RGBA{240, 240, 200, 230}
	colorAlertText  = color.RGBA{160, 30, 30, 255}
)

// badgeColors are the robot badge fills, indexed by world.Color
var badgeColors = map[world.Color]color.RGBA{
	world.ColorRed:    {255, 0, 0, 255},
	world.ColorGreen:  {0, 255, 0, 255},
	world.ColorBlue:   {0, 0, 255, 255},
	world.ColorYellow: {255, 255, 0, 255},
	world.ColorBlack:  {0, 0, 0, 255},
	world.ColorWhite:  {255, 255, 255, 255},
	world.ColorOrange: {255, 140, 0, 255},
	world.ColorPurple: {140, 80, 220, 255},
	world.ColorPink:   {255, 105, 180, 255},
	world.ColorCyan:   {0, 255, 255, 255},
}

// badgeColor is the badge fill for a robot; switched-off robots are dimmed
func badgeColor(c world.Color, active bool) color.RGBA {
	col, ok := badgeColors[c]
	if !ok {
		col = colorNoBadge
	}
	if !active {
		col.A = dimAlpha
	}
	return col
}

// ghostPalette colors a hover preview
type ghostPalette struct {
	fill   color.RGBA
	border color.RGBA
	line   color.RGBA
}

var (
	ghostAdd = ghostPalette{
		fill:   color.RGBA{60, 200, 90, 70},
		border: color.RGBA{30, 140, 55, 230},
		line:   color.RGBA{20, 120, 45, 255},
	}
	ghostRemove = ghostPalette{
		fill:   color.RGBA{230, 80, 80, 70},
		border: color.RGBA{170, 40, 40, 230},
		line:   color.RGBA{160, 30, 30, 255},
	}
	ghostPresent = ghostPalette{
		fill:   color.RGBA{255, 190, 60, 70},
		border: color.RGBA{200, 130, 20, 230},
		line:   color.RGBA{190, 120, 10, 255},
	}
	ghostNeutral = ghostPalette{
		fill:   color.RGBA{120, 120, 120, 40},
		border: color.RGBA{100, 100, 100, 120},
		line:   color.RGBA{100, 100, 100, 160},
	}
)

func ghostColors(a editor.HoverAction) ghostPalette {
	switch a {
	case editor.HoverAdd, editor.HoverSetInfinity:
		return ghostAdd
	case editor.HoverRemove, editor.HoverClear:
		return ghostRemove
	case editor.HoverAlreadyPresent:
		return ghostPresent
	default:
		return ghostNeutral
	}
}

// Drawing sizes in pixels unless noted
const (
	dimAlpha = 140

	gridLineWidth     = 1
	boundaryLineWidth = 3
	wallThickness     = 4

	beeperRadiusFrac = 0.16
	beeperRadiusMax  = 10

	robotSizeFrac  = 0.70
	robotSizeMax   = 40
	badgeFrac      = 0.14
	badgeRadiusMin = 4
	badgeRadiusMax = 10

	ghostCellFrac      = 0.55
	ghostWallHalfMin   = 14
	ghostWallHalfFrac  = 0.22
	ghostWallPadMin    = 8
	ghostWallPadFrac   = 0.10
	ghostWallLineWidth = 5

	hudX       = 10
	hudY       = 8
	hudSubtleX = 110

	legendX       = 10
	legendY       = 36
	legendW       = 470
	legendH       = 150
	legendPadding = 12
	legendLineY   = 38
	legendLineGap = 21

	statusBarHeight  = 28
	messageBarHeight = 24
	messageBarOffset = 56
)

// Font sizes
const (
	fontSizeSmall   = 16.0
	fontSizeBeeper  = 14.0
	fontSizeOverlay = 18.0
	fontSizeStatus  = 20.0
)
