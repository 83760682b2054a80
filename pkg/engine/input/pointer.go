package input

// Button names a single held mouse button
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Pointer is the mouse state sampled once per frame
type Pointer struct {
	X, Y  float64
	Left  bool
	Right bool
}

// Held returns the one button currently down, or ButtonNone when neither or
// both are down.
func (p Pointer) Held() Button {
	switch {
	case p.Left && !p.Right:
		return ButtonLeft
	case p.Right && !p.Left:
		return ButtonRight
	default:
		return ButtonNone
	}
}

// Edges tracks button state between frames to find presses
type Edges struct {
	prevLeft  bool
	prevRight bool
}

// Update records this frame's pointer and reports which buttons went down
// since the previous frame.
func (e *Edges) Update(p Pointer) (left, right bool) {
	left = p.Left && !e.prevLeft
	right = p.Right && !e.prevRight
	e.prevLeft, e.prevRight = p.Left, p.Right
	return left, right
}
