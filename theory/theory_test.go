package theory

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestMod(t *testing.T) {
	tests := []struct {
		x, n, want int
	}{
		{-1, 7, 6},
		{7, 7, 0},
		{0, 7, 0},
		{-7, 7, 0},
		{-8, 7, 6},
		{15, 7, 1},
		{-13, 12, 11},
	}
	for _, tt := range tests {
		if got := Mod(tt.x, tt.n); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.x, tt.n, got, tt.want)
		}
	}

	for n := 1; n <= 13; n++ {
		for x := -50; x <= 50; x++ {
			got := Mod(x, n)
			if got < 0 || got >= n {
				t.Fatalf("Mod(%d, %d) = %d, out of range", x, n, got)
			}
			if (x-got)%n != 0 {
				t.Fatalf("Mod(%d, %d) = %d, not congruent", x, n, got)
			}
		}
	}
}

func TestModPanicsOnNonPositive(t *testing.T) {
	for _, n := range []int{0, -3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Mod(1, %d) did not panic", n)
				}
			}()
			Mod(1, n)
		}()
	}
}

func TestMakeScale(t *testing.T) {
	tests := []struct {
		mode int
		want Scale
	}{
		{0, Scale{0, 2, 4, 5, 7, 9, 11}},
		{5, Scale{0, 2, 3, 5, 7, 8, 10}},
		{6, Scale{0, 1, 3, 5, 6, 8, 10}},
		{7, Scale{0, 2, 4, 5, 7, 9, 11}},
		{-1, Scale{0, 1, 3, 5, 6, 8, 10}},
	}
	for _, tt := range tests {
		if got := MakeScale(tt.mode); got != tt.want {
			t.Errorf("MakeScale(%d) = %v, want %v", tt.mode, got, tt.want)
		}
	}

	for m := -7; m < 14; m++ {
		s := MakeScale(m)
		if s[0] != 0 {
			t.Errorf("MakeScale(%d)[0] = %d", m, s[0])
		}
		if total := s[6] + PatternStep(m+6); total != Octave {
			t.Errorf("MakeScale(%d) spans %d semitones", m, total)
		}
		if _, err := NewScale(s[:]); err != nil {
			t.Errorf("MakeScale(%d) rejected by NewScale: %v", m, err)
		}
	}

	if Mode5Scale != NaturalMinorScale {
		t.Errorf("Mode5Scale = %v, want natural minor %v", Mode5Scale, NaturalMinorScale)
	}
}

func TestNewScale(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		ok      bool
	}{
		{"harmonic minor", []int{0, 2, 3, 5, 7, 8, 11}, true},
		{"short", []int{0, 2, 4}, false},
		{"offset tonic", []int{1, 2, 4, 5, 7, 9, 11}, false},
		{"not increasing", []int{0, 2, 2, 5, 7, 9, 11}, false},
		{"past octave", []int{0, 2, 4, 5, 7, 9, 12}, false},
	}
	for _, tt := range tests {
		_, err := NewScale(tt.offsets)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrScale) {
			t.Errorf("%s: err = %v, want ErrScale", tt.name, err)
		}
	}
}

func TestKeyPitch(t *testing.T) {
	scales := []Scale{Ionian, NaturalMinorScale, HarmonicMinorScale, Mode6Scale}
	for _, s := range scales {
		k := CreateKey(s)
		if got := k.Pitch(0); got != 0 {
			t.Errorf("%v: Pitch(0) = %d", s, got)
		}
		if got, want := k.Pitch(7), 12+s[0]; got != want {
			t.Errorf("%v: Pitch(7) = %d, want %d", s, got, want)
		}
		if got, want := k.Pitch(-1), s[6]-12; got != want {
			t.Errorf("%v: Pitch(-1) = %d, want %d", s, got, want)
		}
		for d := -30; d < 30; d++ {
			if k.Pitch(d+1) <= k.Pitch(d) {
				t.Fatalf("%v: Pitch not increasing at %d", s, d)
			}
			if k.Pitch(d+7) != k.Pitch(d)+12 {
				t.Fatalf("%v: Pitch(%d+7) != Pitch(%d)+12", s, d, d)
			}
		}
	}

	if got := Major.Pitch(-8); got != -13 {
		t.Errorf("Major.Pitch(-8) = %d, want -13", got)
	}
}

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"major", Major},
		{" Major ", Major},
		{"ionian", Major},
		{"minor", Minor},
		{"harmonic-minor", HarmonicMinor},
		{"mode5", Mode5},
		{"mode6", Mode6},
		{"mode2", CreateKey(MakeScale(2))},
	}
	for _, tt := range tests {
		got, err := KeyByName(tt.name)
		if err != nil {
			t.Errorf("KeyByName(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("KeyByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	for _, bad := range []string{"", "lydian", "modex"} {
		if _, err := KeyByName(bad); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("KeyByName(%q) err = %v, want ErrUnknownKey", bad, err)
		}
	}

	if names := KeyNames(); !slices.IsSorted(names) || len(names) != len(presets) {
		t.Errorf("KeyNames() = %v", names)
	}
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name   string
		p      Pitcher
		degree int
		want   int
	}{
		{"identity", Identity(Major), 4, 7},
		{"dominant5 tonic", Dominant5(Major), 0, 0},
		{"dominant5 leading tone", Dominant5(Major), 3, 6},
		{"dominant4 tonic", Dominant4(Major), 0, 0},
		{"dominant4 flat seventh", Dominant4(Major), 2, 4},
		{"dominant4 fourth", Dominant4(Major), 3, 5},
		{"dominant7", Dominant7(Major), 6, 11},
		{"minor2", Minor2(), 0, 1},
		{"minor2 root", Minor2(), 1, 2},
		{"minor3 root", Minor3(), 2, 3},
		{"minor3 raised seventh", Minor3(), 1, 2},
	}
	for _, tt := range tests {
		if got := tt.p.Pitch(tt.degree); got != tt.want {
			t.Errorf("%s: Pitch(%d) = %d, want %d", tt.name, tt.degree, got, tt.want)
		}
	}

	// a transform is its base key read at a shifted degree
	tr := Dominant5(Major)
	for d := -20; d < 20; d++ {
		if got, want := tr.Pitch(d), Major.Pitch(d-4)+7; got != want {
			t.Fatalf("Dominant5.Pitch(%d) = %d, want %d", d, got, want)
		}
	}
}

func TestSelector(t *testing.T) {
	for s := Tonic; s <= Minor3rd; s++ {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("%d.MarshalText: %v", s, err)
		}
		var back Selector
		if err := back.UnmarshalText(b); err != nil || back != s {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}

	if Selector(42).Valid() {
		t.Error("Selector(42) reported valid")
	}
	if _, err := Selector(-1).MarshalText(); err == nil {
		t.Error("MarshalText on invalid selector succeeded")
	}
	var s Selector
	if err := s.UnmarshalText([]byte("subdominant")); err == nil {
		t.Error("UnmarshalText accepted an unknown name")
	}
	if got := Minor3rd.Transform(Mode6); got != Minor3() {
		t.Errorf("Minor3rd.Transform ignores key: got %+v", got)
	}
}

func TestParseMotif(t *testing.T) {
	m, err := ParseMotif([]int{0, 2, 4, 7, 9})
	if err != nil || m != (Motif{0, 2, 4, 7, 9}) {
		t.Fatalf("ParseMotif = %v, %v", m, err)
	}
	for _, bad := range [][]int{nil, {1, 2, 3, 4}, {1, 2, 3, 4, 5, 6}} {
		if _, err := ParseMotif(bad); !errors.Is(err, ErrMotifLength) {
			t.Errorf("ParseMotif(%v) err = %v", bad, err)
		}
	}
	if got := (Motif{0, 2, 4, 7, 9}).Shift(-7); got != (Motif{-7, -5, -3, 0, 2}) {
		t.Errorf("Shift(-7) = %v", got)
	}
}

func TestLineAndTwice(t *testing.T) {
	if got := Line(Motif{1, 2, 3, 4, 5}); got != [LineLen]int{1, 2, 3, 4, 5, 3, 4, 5} {
		t.Errorf("Line = %v", got)
	}
	if got := Twice([]int{1, 2, 3}); !slices.Equal(got, []int{1, 2, 3, 1, 2, 3}) {
		t.Errorf("Twice = %v", got)
	}
	if got := Twice([]int{}); len(got) != 0 {
		t.Errorf("Twice(empty) = %v", got)
	}
	if got := Twice([]string{"a"}); !slices.Equal(got, []string{"a", "a"}) {
		t.Errorf("Twice(strings) = %v", got)
	}
}

func TestPhraseExpandsBeforeTransform(t *testing.T) {
	got := Phrase(Motif{0, 2, 4, 7, 9}, Major)
	want := []int{0, 4, 7, 12, 16, 7, 12, 16, 0, 4, 7, 12, 16, 7, 12, 16}
	if !slices.Equal(got, want) {
		t.Errorf("Phrase = %v, want %v", got, want)
	}
}

func TestReference(t *testing.T) {
	if len(Reference) != 21 {
		t.Fatalf("len(Reference) = %d, want 21", len(Reference))
	}
	if err := Validate(Reference); err != nil {
		t.Fatal(err)
	}
	if Reference[0] != (Entry{Motif{0, 2, 4, 7, 9}, Tonic}) {
		t.Errorf("first entry = %v", Reference[0])
	}
	if Reference[18].Motif != Reference[0].Motif.Shift(-7) {
		t.Errorf("entry 18 = %v", Reference[18].Motif)
	}
	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) succeeded")
	}
	if err := Validate([]Entry{{Transform: Selector(9)}}); err == nil {
		t.Error("Validate accepted an invalid selector")
	}
}

func TestGeneratePrelude(t *testing.T) {
	notes := GeneratePrelude(Major)
	if len(notes) != 336 {
		t.Fatalf("len = %d, want 336", len(notes))
	}

	first := []int{0, 4, 7, 12, 16, 7, 12, 16}
	if !slices.Equal(notes[:16], Twice(first)) {
		t.Errorf("first phrase = %v", notes[:16])
	}
	second := []int{0, 2, 9, 14, 17, 9, 14, 17}
	if !slices.Equal(notes[16:32], Twice(second)) {
		t.Errorf("second phrase = %v", notes[16:32])
	}

	// entry 5 is in the dominant: F# appears
	if got := notes[5*NotesPerEntry+2]; got != 6 {
		t.Errorf("dominant phrase third note = %d, want 6", got)
	}

	for i := 0; i < len(notes); i += NotesPerEntry {
		if !slices.Equal(notes[i:i+LineLen], notes[i+LineLen:i+NotesPerEntry]) {
			t.Errorf("phrase at %d is not doubled", i)
		}
	}

	if !slices.Equal(GeneratePrelude(Major), notes) {
		t.Error("GeneratePrelude is not deterministic")
	}
}

// preludeMajor is the full reference composition in C major, one entry per
// line.
var preludeMajor = []int{
	0, 4, 7, 12, 16, 7, 12, 16, 0, 4, 7, 12, 16, 7, 12, 16,
	0, 2, 9, 14, 17, 9, 14, 17, 0, 2, 9, 14, 17, 9, 14, 17,
	-1, 2, 7, 14, 17, 7, 14, 17, -1, 2, 7, 14, 17, 7, 14, 17,
	0, 4, 7, 12, 16, 7, 12, 16, 0, 4, 7, 12, 16, 7, 12, 16,
	0, 4, 9, 16, 21, 9, 16, 21, 0, 4, 9, 16, 21, 9, 16, 21,
	0, 2, 6, 9, 14, 6, 9, 14, 0, 2, 6, 9, 14, 6, 9, 14,
	-1, 2, 7, 14, 19, 7, 14, 19, -1, 2, 7, 14, 19, 7, 14, 19,
	-1, 0, 4, 7, 12, 4, 7, 12, -1, 0, 4, 7, 12, 4, 7, 12,
	-3, 0, 4, 7, 12, 4, 7, 12, -3, 0, 4, 7, 12, 4, 7, 12,
	-10, -6, 2, 6, 12, 2, 6, 12, -10, -6, 2, 6, 12, 2, 6, 12,
	-5, -1, 2, 7, 11, 2, 7, 11, -5, -1, 2, 7, 11, 2, 7, 11,
	-5, -2, 4, 7, 13, 4, 7, 13, -5, -2, 4, 7, 13, 4, 7, 13,
	-7, -3, 2, 9, 14, 2, 9, 14, -7, -3, 2, 9, 14, 2, 9, 14,
	-7, -4, 2, 5, 11, 2, 5, 11, -7, -4, 2, 5, 11, 2, 5, 11,
	-8, -5, 0, 7, 12, 0, 7, 12, -8, -5, 0, 7, 12, 0, 7, 12,
	-8, -7, -3, 0, 5, -3, 0, 5, -8, -7, -3, 0, 5, -3, 0, 5,
	-10, -7, -3, 0, 5, -3, 0, 5, -10, -7, -3, 0, 5, -3, 0, 5,
	-17, -10, -5, -1, 5, -5, -1, 5, -17, -10, -5, -1, 5, -5, -1, 5,
	-12, -8, -5, 0, 4, -5, 0, 4, -12, -8, -5, 0, 4, -5, 0, 4,
	-12, -5, -2, 0, 4, -2, 0, 4, -12, -5, -2, 0, 4, -2, 0, 4,
	-19, -7, -3, 0, 4, -3, 0, 4, -19, -7, -3, 0, 4, -3, 0, 4,
}

func TestGeneratePreludeGolden(t *testing.T) {
	notes := GeneratePrelude(Major)
	if len(notes) != len(preludeMajor) {
		t.Fatalf("len = %d, want %d", len(notes), len(preludeMajor))
	}
	for i := range preludeMajor {
		if notes[i] != preludeMajor[i] {
			e := i / NotesPerEntry
			t.Fatalf("note %d (entry %d, %s) = %d, want %d", i, e, Reference[e].Transform, notes[i], preludeMajor[i])
		}
	}
}

func TestFrequency(t *testing.T) {
	const eps = 1e-9
	if got, want := Frequency(0), 220*math.Pow(2, 0.25); math.Abs(got-want) > eps {
		t.Errorf("Frequency(0) = %v, want %v", got, want)
	}
	if math.Abs(Frequency(0)-261.6255653) > 1e-6 {
		t.Errorf("Frequency(0) = %v, want middle C", Frequency(0))
	}
	if got := Frequency(-3); math.Abs(got-220) > eps {
		t.Errorf("Frequency(-3) = %v", got)
	}
	if got := Frequency(9); math.Abs(got-440) > eps {
		t.Errorf("Frequency(9) = %v", got)
	}
	if got, want := Frequency(12), 2*Frequency(0); math.Abs(got-want) > eps {
		t.Errorf("Frequency(12) = %v, want %v", got, want)
	}
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "C4"},
		{-1, "B3"},
		{9, "A4"},
		{12, "C5"},
		{-13, "B2"},
		{6, "F#4"},
	}
	for _, tt := range tests {
		if got := NoteName(tt.n); got != tt.want {
			t.Errorf("NoteName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	if MIDINote(0) != 60 || MIDINote(-3) != 57 {
		t.Errorf("MIDINote wrong: %d %d", MIDINote(0), MIDINote(-3))
	}
}

func TestNearestNote(t *testing.T) {
	for n := -36; n <= 36; n++ {
		f := Frequency(float64(n))
		for _, detune := range []float64{0.98, 1, 1.02} {
			if got := NearestNote(f * detune); got != n {
				t.Fatalf("NearestNote(%v) = %d, want %d", f*detune, got, n)
			}
		}
	}
}
