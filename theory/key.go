package theory

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Pitcher maps a scale degree to a semitone offset from the tonic.
type Pitcher interface {
	Pitch(degree int) int
}

// Key maps scale degrees of any octave onto semitones.
type Key struct {
	Scale Scale
}

// CreateKey returns the key of a scale.
func CreateKey(s Scale) Key {
	return Key{Scale: s}
}

// Pitch returns the semitone offset of a degree. Degree 7 is the tonic one
// octave up and degree -1 is the leading tone one octave down.
func (k Key) Pitch(degree int) int {
	return floorDiv(degree, Degrees)*Octave + k.Scale[Mod(degree, Degrees)]
}

// Preset keys.
var (
	Major         = CreateKey(Ionian)
	Minor         = CreateKey(NaturalMinorScale)
	HarmonicMinor = CreateKey(HarmonicMinorScale)
	Mode5         = CreateKey(Mode5Scale)
	Mode6         = CreateKey(Mode6Scale)
)

// ErrUnknownKey is returned by KeyByName.
var ErrUnknownKey = errors.New("theory: unknown key")

var presets = map[string]Key{
	"major":          Major,
	"ionian":         Major,
	"minor":          Minor,
	"harmonic-minor": HarmonicMinor,
	"mode5":          Mode5,
	"mode6":          Mode6,
}

// KeyByName resolves a preset name, or "mode<N>" for the diatonic mode N.
func KeyByName(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := presets[name]; ok {
		return k, nil
	}
	if rest, ok := strings.CutPrefix(name, "mode"); ok {
		mode, err := strconv.Atoi(rest)
		if err == nil {
			return CreateKey(MakeScale(mode)), nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyNames lists the preset names accepted by KeyByName.
func KeyNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
