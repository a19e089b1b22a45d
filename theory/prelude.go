package theory

import (
	"errors"
	"fmt"
)

// Entry is one phrase of a composition.
type Entry struct {
	Motif     Motif    `json:"motif" yaml:"motif" msgpack:"motif"`
	Transform Selector `json:"transform" yaml:"transform" msgpack:"transform"`
}

// Reference is the authored prelude.
var Reference = []Entry{
	{Motif{0, 2, 4, 7, 9}, Tonic},
	{Motif{0, 1, 5, 8, 10}, Tonic},
	{Motif{-1, 1, 4, 8, 10}, Tonic},
	{Motif{0, 2, 4, 7, 9}, Tonic},
	{Motif{0, 2, 5, 9, 12}, Tonic},
	{Motif{0, 1, 3, 5, 8}, Dominant5th},
	{Motif{-1, 1, 4, 8, 11}, Tonic},
	{Motif{-1, 0, 2, 4, 7}, Tonic},
	{Motif{-2, 0, 2, 4, 7}, Tonic},
	{Motif{-6, -4, 1, 3, 7}, Dominant5th},
	{Motif{-3, -1, 1, 4, 6}, Tonic},
	{Motif{-3, -1, 2, 4, 7}, Minor2nd},
	{Motif{-4, -2, 1, 5, 8}, Tonic},
	{Motif{-4, -2, 1, 3, 7}, Minor3rd},
	{Motif{-5, -3, 0, 4, 7}, Tonic},
	{Motif{-5, -4, -2, 0, 3}, Tonic},
	{Motif{-6, -4, -2, 0, 3}, Tonic},
	{Motif{-10, -6, -3, -1, 3}, Tonic},
	{Motif{-7, -5, -3, 0, 2}, Tonic}, // the opening motif an octave down
	{Motif{-7, -3, -1, 0, 2}, Dominant4th},
	{Motif{-11, -4, -2, 0, 2}, Tonic},
}

// NotesPerEntry is the number of notes one entry contributes.
const NotesPerEntry = 2 * LineLen

var errEmptyComposition = errors.New("theory: empty composition")

// Validate checks that entries is non-empty and every selector is known.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return errEmptyComposition
	}
	for i, e := range entries {
		if !e.Transform.Valid() {
			return fmt.Errorf("theory: entry %d: invalid selector %d", i, int(e.Transform))
		}
	}
	return nil
}

// Compose plays every entry in order under key and concatenates the phrases.
func Compose(key Key, entries []Entry) []int {
	notes := make([]int, 0, len(entries)*NotesPerEntry)
	for _, e := range entries {
		notes = append(notes, Phrase(e.Motif, e.Transform.Transform(key))...)
	}
	return notes
}

// GeneratePrelude returns the note sequence of the reference composition in
// key.
func GeneratePrelude(key Key) []int {
	return Compose(key, Reference)
}
