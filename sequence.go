package prelude

import (
	"time"
)

// Event runs Func once the Mix reaches sample Time.
type Event struct {
	Time int64
	Func func(*Mix)
}

// Sequence is a list of events ordered by Time. The last event marks the end
// of the sequence; it usually has no Func.
type Sequence struct {
	Events []Event
}

// Len returns the length of the sequence in samples.
func (s *Sequence) Len() int64 {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Time
}

// DefaultNotesPerSecond plays each note for a sixth of a second.
const DefaultNotesPerSecond = 6

// Timing places notes on the sample grid.
type Timing struct {
	SampleRate     int     `json:"sample_rate" yaml:"sample_rate"`
	NotesPerSecond float64 `json:"notes_per_second" yaml:"notes_per_second"`
}

// DefaultTiming is 44.1 kHz at six notes per second.
var DefaultTiming = Timing{SampleRate: DefaultSampleRate, NotesPerSecond: DefaultNotesPerSecond}

// NoteTime returns the sample at which note i starts.
func (t Timing) NoteTime(i int) int64 {
	return int64(float64(i) * float64(t.SampleRate) / t.NotesPerSecond)
}

// NoteDuration returns how long one note sounds, or 0 for a timing without
// a positive rate.
func (t Timing) NoteDuration() time.Duration {
	if t.NotesPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / t.NotesPerSecond)
}

// Duration returns how long n notes last.
func (t Timing) Duration(n int) time.Duration {
	return time.Duration(n) * t.NoteDuration()
}

// NewSequence changes the pitch of voice 0 once per note, note i starting at
// i note durations.
func NewSequence(notes []int, t Timing) *Sequence {
	events := make([]Event, 0, len(notes)+1)
	for i, n := range notes {
		pitch := float64(n)
		events = append(events, Event{
			Time: t.NoteTime(i),
			Func: func(m *Mix) {
				m.Voices[0].Pitch = pitch
			},
		})
	}
	events = append(events, Event{Time: t.NoteTime(len(notes))})
	return &Sequence{Events: events}
}
