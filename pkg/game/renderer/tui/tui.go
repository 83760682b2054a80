package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"karelworld/pkg/engine/terminal"
	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

const clearScreen = "\x1b[H\x1b[2J"

// TUIRenderer draws the world as colored text. It is used when no window can
// be opened.
type TUIRenderer struct {
	// Out receives every frame; it defaults to stdout
	Out io.Writer

	// ClearScreen homes the cursor and clears before each frame
	ClearScreen bool

	colorGrid     color.Style
	colorWall     color.Style
	colorBeeper   color.Style
	colorRobot    color.Style
	colorRobotOff color.Style
	colorSubtle   color.Style
	colorAlert    color.Style
	colorHUD      color.Style

	lastVersion uint64
	lastMessage string
	lastSpeed   int
	rendered    bool
	warnedSize  bool
}

// New creates a new TUI renderer writing to stdout
func New() *TUIRenderer {
	return &TUIRenderer{Out: os.Stdout, ClearScreen: true}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorGrid = color.Style{color.FgGray}
	t.colorWall = color.Style{color.FgWhite, color.OpBold}
	t.colorBeeper = color.Style{color.FgYellow, color.OpBold}
	t.colorRobot = color.Style{color.FgGreen, color.OpBold}
	t.colorRobotOff = color.Style{color.FgGreen}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorAlert = color.Style{color.FgRed, color.OpBold}
	t.colorHUD = color.Style{color.FgCyan}
	if t.Out == nil {
		t.Out = os.Stdout
	}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	fmt.Fprint(t.Out, clearScreen)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleGrid:
		return t.colorGrid.Sprint(text)
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleBeeper:
		return t.colorBeeper.Sprint(text)
	case renderer.StyleRobot:
		return t.colorRobot.Sprint(text)
	case renderer.StyleRobotOff:
		return t.colorRobotOff.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleAlert:
		return t.colorAlert.Sprint(text)
	case renderer.StyleHUD:
		return t.colorHUD.Sprint(text)
	default:
		return text
	}
}

// RenderFrame prints the board when anything visible changed since the last
// frame. Unchanged frames print nothing, so a fast tick rate does not flood
// the terminal.
func (t *TUIRenderer) RenderFrame(f state.Frame) {
	version := f.Snapshot.Version()
	if t.rendered && version == t.lastVersion && f.Message == t.lastMessage && f.Speed == t.lastSpeed {
		return
	}
	t.rendered = true
	t.lastVersion = version
	t.lastMessage = f.Message
	t.lastSpeed = f.Speed

	if t.ClearScreen {
		t.Clear()
	}
	text := t.Frame(f)
	fmt.Fprint(t.Out, text)

	if t.ClearScreen && !t.warnedSize {
		cols := utf8.RuneCountInString(renderer.Board(f.Snapshot, f.Geometry.Streets(), f.Geometry.Avenues(), renderer.PlainStyle)[0])
		if !terminal.Fits(cols, strings.Count(text, "\n")) {
			t.warnedSize = true
			t.ShowMessage(gotext.Get("The board is larger than the terminal; enlarge the window or use fewer streets"))
		}
	}
}

// Frame returns the full text of one frame: the board, then the HUD line,
// then the status message if one is showing.
func (t *TUIRenderer) Frame(f state.Frame) string {
	var b strings.Builder
	for _, line := range renderer.Board(f.Snapshot, f.Geometry.Streets(), f.Geometry.Avenues(), t.StyleText) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	hud := gotext.Get("Speed %d", f.Speed)
	if robots := f.Snapshot.RobotCount(); robots > 0 {
		hud += "   " + gotext.Get("Robots %d", robots)
	}
	b.WriteString(t.StyleText(hud, renderer.StyleHUD))
	b.WriteString("\n")

	if f.Message != "" {
		style := renderer.StyleNormal
		if f.MessageAlert {
			style = renderer.StyleAlert
		}
		b.WriteString(t.StyleText(f.Message, style))
		b.WriteString("\n")
	}
	return b.String()
}

// ShowMessage prints a line outside the board
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.Out, msg)
}

// GetViewportSize returns the terminal size (rows, cols)
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	cols, rows = terminal.GetSize()
	return rows, cols
}
