package world

import (
	"errors"
	"strconv"
)

// Beepers is the size of a beeper pile: a non-negative count or Infinite.
type Beepers int

// Infinite marks a pile that never runs out
const Infinite Beepers = -1

// ErrNegativeCount is returned when a pile is given a negative finite count
var ErrNegativeCount = errors.New("beeper count must not be negative")

// IsInfinite reports whether the pile is unlimited
func (b Beepers) IsInfinite() bool {
	return b == Infinite
}

// Valid reports whether b is a count the world may store or remove
func (b Beepers) Valid() bool {
	return b >= 0 || b == Infinite
}

// Increment adds one beeper; an infinite pile stays infinite
func (b Beepers) Increment() Beepers {
	if b.IsInfinite() {
		return b
	}
	return b + 1
}

// String returns "inf" for unlimited piles and the decimal count otherwise
func (b Beepers) String() string {
	if b.IsInfinite() {
		return "inf"
	}
	return strconv.Itoa(int(b))
}
