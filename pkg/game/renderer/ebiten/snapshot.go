package ebiten

import (
	"karelworld/pkg/game/state"
)

// RenderFrame stores the frame for the next Draw call
func (e *EbitenRenderer) RenderFrame(f state.Frame) {
	e.frameMutex.Lock()
	defer e.frameMutex.Unlock()
	e.frame = f
	e.frameValid = true
}

// currentFrame returns the last stored frame
func (e *EbitenRenderer) currentFrame() (state.Frame, bool) {
	e.frameMutex.RLock()
	defer e.frameMutex.RUnlock()
	return e.frame, e.frameValid
}
