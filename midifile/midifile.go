// Package midifile exports note sequences as Standard MIDI Files.
package midifile

import (
	"errors"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/rwelin/prelude/theory"
)

// Resolution is the number of ticks per quarter note.
const Resolution = smf.MetricTicks(960)

// ErrNoteRange is returned for notes outside the MIDI key range.
var ErrNoteRange = errors.New("midifile: note out of range")

// Options configures Write.
type Options struct {
	NotesPerSecond float64
	Channel        uint8
	Velocity       uint8
	Name           string
}

// DefaultOptions writes six notes per second on channel 0.
func DefaultOptions() Options {
	return Options{
		NotesPerSecond: 6,
		Channel:        0,
		Velocity:       100,
		Name:           "prelude",
	}
}

// Tempo returns the tempo in BPM at which every note is a sixteenth.
func (o Options) Tempo() float64 {
	return 60 * o.NotesPerSecond / 4
}

// Track builds a single-track MIDI sequence of notes, one sixteenth each.
func Track(notes []int, opts Options) (smf.Track, error) {
	if opts.NotesPerSecond <= 0 {
		return nil, fmt.Errorf("midifile: notes per second must be positive, got %v", opts.NotesPerSecond)
	}
	if opts.Channel > 15 {
		return nil, fmt.Errorf("midifile: channel %d out of range", opts.Channel)
	}

	var tr smf.Track
	if opts.Name != "" {
		tr.Add(0, smf.MetaTrackSequenceName(opts.Name))
	}
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(opts.Tempo()))

	step := Resolution.Ticks16th()
	for i, n := range notes {
		key := theory.MIDINote(n)
		if key < 0 || key > 127 {
			return nil, fmt.Errorf("%w: note %d (key %d) at %d", ErrNoteRange, n, key, i)
		}
		tr.Add(0, midi.NoteOn(opts.Channel, uint8(key), opts.Velocity))
		tr.Add(step, midi.NoteOff(opts.Channel, uint8(key)))
	}
	tr.Close(0)
	return tr, nil
}

// Write encodes notes as a single-track Standard MIDI File.
func Write(w io.Writer, notes []int, opts Options) (int64, error) {
	tr, err := Track(notes, opts)
	if err != nil {
		return 0, err
	}
	s := smf.New()
	s.TimeFormat = Resolution
	if err := s.Add(tr); err != nil {
		return 0, fmt.Errorf("midifile: add track: %w", err)
	}
	return s.WriteTo(w)
}
