package theory

import (
	"fmt"
	"strings"
)

// Transform reads a degree in a related key: the degree is moved down by
// Shift before the Base lookup and the pitch is moved up by Offset after it.
type Transform struct {
	Base   Key
	Shift  int
	Offset int
}

// Pitch implements Pitcher.
func (t Transform) Pitch(degree int) int {
	return t.Base.Pitch(degree-t.Shift) + t.Offset
}

// Identity plays degrees in k unchanged.
func Identity(k Key) Transform { return Transform{Base: k} }

// Dominant4 borrows the key a fourth above k.
func Dominant4(k Key) Transform { return Transform{Base: k, Shift: 3, Offset: 5} }

// Dominant5 borrows the key a fifth above k.
func Dominant5(k Key) Transform { return Transform{Base: k, Shift: 4, Offset: 7} }

// Dominant7 borrows the key on the seventh degree of k.
func Dominant7(k Key) Transform { return Transform{Base: k, Shift: 6, Offset: 11} }

// Minor2 reads degrees in the harmonic minor on the second.
func Minor2() Transform { return Transform{Base: HarmonicMinor, Shift: 1, Offset: 2} }

// Minor3 reads degrees in the harmonic minor on the third.
func Minor3() Transform { return Transform{Base: HarmonicMinor, Shift: 2, Offset: 3} }

// Selector names the transform an entry of a composition is played under.
type Selector int

const (
	Tonic Selector = iota
	Dominant4th
	Dominant5th
	Dominant7th
	Minor2nd
	Minor3rd
)

var selectorNames = [...]string{
	Tonic:       "tonic",
	Dominant4th: "dominant4",
	Dominant5th: "dominant5",
	Dominant7th: "dominant7",
	Minor2nd:    "minor2",
	Minor3rd:    "minor3",
}

// Valid reports whether s is a known selector.
func (s Selector) Valid() bool {
	return s >= 0 && int(s) < len(selectorNames)
}

func (s Selector) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Selector(%d)", int(s))
	}
	return selectorNames[s]
}

// Transform resolves s against the primary key. The minor selectors ignore
// key and always borrow from the harmonic minor.
func (s Selector) Transform(key Key) Transform {
	switch s {
	case Tonic:
		return Identity(key)
	case Dominant4th:
		return Dominant4(key)
	case Dominant5th:
		return Dominant5(key)
	case Dominant7th:
		return Dominant7(key)
	case Minor2nd:
		return Minor2()
	case Minor3rd:
		return Minor3()
	}
	panic(fmt.Sprintf("theory: invalid selector %d", int(s)))
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("theory: invalid selector %d", int(s))
	}
	return []byte(selectorNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range selectorNames {
		if n == name {
			*s = Selector(i)
			return nil
		}
	}
	return fmt.Errorf("theory: unknown selector %q", b)
}
