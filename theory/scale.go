package theory

import (
	"errors"
	"fmt"
)

// Degrees is the number of notes in a diatonic scale.
const Degrees = 7

// Octave is the number of semitones in an octave.
const Octave = 12

// Pattern is the whole/half step pattern of the Ionian mode.
var Pattern = [Degrees]int{2, 2, 1, 2, 2, 2, 1}

// ErrScale is returned for literal scales that are not 7 increasing offsets
// starting at 0 and staying within one octave.
var ErrScale = errors.New("theory: invalid scale")

// PatternStep returns the step of the interval pattern at rotation i.
func PatternStep(i int) int {
	return Pattern[Mod(i, Degrees)]
}

// Scale holds the semitone offset of each degree from the tonic.
type Scale [Degrees]int

// MakeScale returns the diatonic scale of a mode. Mode 0 is Ionian.
func MakeScale(mode int) Scale {
	var s Scale
	for i := 1; i < Degrees; i++ {
		s[i] = s[i-1] + PatternStep(mode+i-1)
	}
	return s
}

// NewScale validates a literal scale.
func NewScale(offsets []int) (Scale, error) {
	var s Scale
	if len(offsets) != Degrees {
		return s, fmt.Errorf("%w: %d offsets, want %d", ErrScale, len(offsets), Degrees)
	}
	if offsets[0] != 0 {
		return s, fmt.Errorf("%w: starts at %d", ErrScale, offsets[0])
	}
	for i := 1; i < Degrees; i++ {
		if offsets[i] <= offsets[i-1] {
			return s, fmt.Errorf("%w: offset %d not above %d", ErrScale, offsets[i], offsets[i-1])
		}
	}
	if offsets[Degrees-1] >= Octave {
		return s, fmt.Errorf("%w: offset %d leaves the octave", ErrScale, offsets[Degrees-1])
	}
	copy(s[:], offsets)
	return s, nil
}

var (
	Ionian     = MakeScale(0)
	Mode5Scale = MakeScale(5)
	Mode6Scale = MakeScale(6)

	NaturalMinorScale  = Scale{0, 2, 3, 5, 7, 8, 10}
	HarmonicMinorScale = Scale{0, 2, 3, 5, 7, 8, 11} // natural minor with a raised 7th
)
