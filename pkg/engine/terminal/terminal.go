// Package terminal reports the size of the terminal the text renderer draws in.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if stdout is not a terminal.
func GetSize() (width, height int) {
	return sizeOf(int(os.Stdout.Fd()))
}

func sizeOf(fd int) (width, height int) {
	if !term.IsTerminal(fd) {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Fits reports whether a block of text cols wide and rows tall fits the
// terminal without wrapping or scrolling.
func Fits(cols, rows int) bool {
	width, height := GetSize()
	return cols <= width && rows <= height
}
