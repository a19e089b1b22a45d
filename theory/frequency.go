package theory

import (
	"fmt"
	"math"
)

// Frequency returns the equal-tempered frequency in Hz of the semitone offset
// n. Offset 0 is middle C, three semitones above A 220.
func Frequency(n float64) float64 {
	return 220 * math.Exp2((n+3)/12)
}

// MIDINote returns the MIDI key number of offset n.
func MIDINote(n int) int {
	return 60 + n
}

var noteNames = [Octave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of offset n, "C4" for 0.
func NoteName(n int) string {
	return fmt.Sprintf("%s%d", noteNames[Mod(n, Octave)], floorDiv(n, Octave)+4)
}

// NearestNote returns the semitone offset whose frequency is closest to freq
// on a logarithmic scale. freq must be positive.
func NearestNote(freq float64) int {
	return int(math.Round(12*math.Log2(freq/220) - 3))
}
