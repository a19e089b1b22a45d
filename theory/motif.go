package theory

import (
	"errors"
	"fmt"
)

// MotifLen is the number of degrees in a motif.
const MotifLen = 5

// LineLen is the number of notes in a line built from a motif.
const LineLen = 8

// ErrMotifLength is returned when a motif does not have exactly MotifLen
// degrees.
var ErrMotifLength = errors.New("theory: motif must have 5 degrees")

// Motif is a 5-note cell of scale degrees relative to a local tonic of 0.
type Motif [MotifLen]int

// ParseMotif converts degrees into a Motif.
func ParseMotif(degrees []int) (Motif, error) {
	var m Motif
	if len(degrees) != MotifLen {
		return m, fmt.Errorf("%w: got %d", ErrMotifLength, len(degrees))
	}
	copy(m[:], degrees)
	return m, nil
}

// Shift returns m moved by d degrees.
func (m Motif) Shift(d int) Motif {
	for i := range m {
		m[i] += d
	}
	return m
}

// Line states the motif and then repeats its last three degrees.
func Line(m Motif) [LineLen]int {
	return [LineLen]int{m[0], m[1], m[2], m[3], m[4], m[2], m[3], m[4]}
}

// Twice returns s followed by itself.
func Twice[T any](s []T) []T {
	out := make([]T, 0, 2*len(s))
	out = append(out, s...)
	return append(out, s...)
}

// Phrase expands m into a line of degrees, maps each degree through p and
// plays the result twice. The line is built before the mapping because
// transforms do not commute with shifting degrees.
func Phrase(m Motif, p Pitcher) []int {
	line := Line(m)
	notes := make([]int, LineLen)
	for i, d := range line {
		notes[i] = p.Pitch(d)
	}
	return Twice(notes)
}
