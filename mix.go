package prelude

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"

	"github.com/rwelin/prelude/theory"
)

// DefaultSampleRate is used when a Mix is configured without one.
const DefaultSampleRate = 44100

// Instrument is an additive timbre. Harmonics[i] is the amplitude of partial
// i+1.
type Instrument struct {
	Harmonics []float64 `json:"harmonics" yaml:"harmonics"`
}

// DefaultInstrument is a soft organ-like tone.
var DefaultInstrument = Instrument{
	Harmonics: []float64{0.75, 0.5, 0, 0.1, 0.1, 0.05},
}

// Sample returns the instrument's value at oscillator phase.
func (inst *Instrument) Sample(phase float64) float64 {
	var sum float64
	for i, v := range inst.Harmonics {
		sum += v * math.Sin(phase*float64(i+1))
	}
	return sum
}

// Voice is one oscillator of a Mix. Pitch is a semitone offset from middle C.
type Voice struct {
	Level      float64 `json:"level" yaml:"level"`
	Pitch      float64 `json:"pitch" yaml:"pitch"`
	Instrument int     `json:"instrument" yaml:"instrument"`

	phase float64
}

const (
	silence     = 1e-4
	floorGain   = 1e-5
	endRelease  = 10 * time.Millisecond
	stopRelease = 40 * time.Millisecond
)

// Mix renders a Sequence as signed 16-bit little-endian mono PCM.
type Mix struct {
	mutex sync.Mutex

	index int64 // index is the current sample within seq

	seq      *Sequence // seq is the currently playing sequence
	event    int       // event is the index of the next event
	released bool      // released is set once the gain is fading out
	finished bool
	gain     envelope

	SampleRate  int          `json:"sample_rate" yaml:"sample_rate"`
	Level       float64      `json:"level" yaml:"level"` // master audio level
	Instruments []Instrument `json:"instruments" yaml:"instruments"`
	Voices      []Voice      `json:"voices" yaml:"voices"`
}

// NewMix returns a Mix with one full-level voice on the first instrument.
// It starts finished; call Play to give it something to render.
func NewMix(sampleRate int, level float64, instruments []Instrument) *Mix {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if len(instruments) == 0 {
		instruments = []Instrument{DefaultInstrument}
	}
	return &Mix{
		SampleRate:  sampleRate,
		Level:       level,
		Instruments: instruments,
		Voices:      []Voice{{Level: 1}},
		finished:    true,
	}
}

func (m *Mix) Lock() {
	m.mutex.Lock()
}

func (m *Mix) Unlock() {
	m.mutex.Unlock()
}

// Play starts s from its beginning at full gain.
func (m *Mix) Play(s *Sequence) {
	m.Lock()
	defer m.Unlock()
	m.seq = s
	m.index = 0
	m.event = 0
	m.released = false
	m.finished = false
	m.gain.hold(1)
	for i := range m.Voices {
		m.Voices[i].phase = 0
	}
}

// Release fades the output out over d. Read reports io.EOF once it is silent.
func (m *Mix) Release(d time.Duration) {
	m.Lock()
	defer m.Unlock()
	m.release(d, false)
}

func (m *Mix) release(d time.Duration, approach bool) {
	if m.released || m.finished {
		return
	}
	m.released = true
	if approach {
		m.gain.setTarget(floorGain, d.Seconds(), m.SampleRate)
	} else {
		m.gain.rampTo(floorGain, d.Seconds(), m.SampleRate)
	}
}

// Finished reports whether the sequence has ended and faded out.
func (m *Mix) Finished() bool {
	m.Lock()
	defer m.Unlock()
	return m.finished
}

// SetInstrument replaces the harmonics of instrument i.
func (m *Mix) SetInstrument(i int, harmonics []float64) bool {
	m.Lock()
	defer m.Unlock()
	if i < 0 || i >= len(m.Instruments) {
		return false
	}
	m.Instruments[i].Harmonics = append([]float64(nil), harmonics...)
	return true
}

// Read implements io.Reader.
func (m *Mix) Read(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, io.ErrShortBuffer
	}
	n := m.fill(buf[:len(buf)&^1])
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (m *Mix) step() {
	if m.seq == nil {
		m.release(endRelease, true)
		return
	}
	events := m.seq.Events
	for m.event < len(events) {
		e := events[m.event]
		if e.Time > m.index {
			return
		}
		if e.Func != nil {
			e.Func(m)
		}
		m.event++
	}
	m.release(endRelease, true)
}

func (m *Mix) fill(buf []byte) int {
	m.Lock()
	defer m.Unlock()

	i := 0
	for ; i < len(buf) && !m.finished; i += 2 {
		m.step()

		var sum float64
		for j := range m.Voices {
			v := &m.Voices[j]
			if v.Instrument < 0 || v.Instrument >= len(m.Instruments) {
				continue
			}
			sum += v.Level * m.Instruments[v.Instrument].Sample(v.phase)
			v.phase += 2 * math.Pi * theory.Frequency(v.Pitch) / float64(m.SampleRate)
			if v.phase > 2*math.Pi {
				v.phase -= 2 * math.Pi
			}
		}
		m.index++

		g := m.gain.next()
		if m.released && g <= silence {
			m.finished = true
		}

		s := clamp(m.Level*g*sum, -1, 1)
		binary.LittleEndian.PutUint16(buf[i:i+2], uint16(int16(s*math.MaxInt16)))
	}
	return i
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
