package prelude

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

// State is the playback state of a Player.
type State int

const (
	Idle State = iota
	Playing
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Stopping:
		return "stopping"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrPlaying is returned by Start while a sequence is already playing.
var ErrPlaying = errors.New("prelude: already playing")

// Player drives a Mix for a live audio device. It is an endless io.Reader:
// while idle it produces silence.
type Player struct {
	mu    sync.Mutex
	mix   *Mix
	state State
	idle  chan struct{}
}

// NewPlayer returns an idle player.
func NewPlayer(m *Mix) *Player {
	idle := make(chan struct{})
	close(idle)
	return &Player{mix: m, idle: idle}
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mix returns the mix the player renders.
func (p *Player) Mix() *Mix {
	return p.mix
}

// Idle returns a channel that is closed once the player is idle.
func (p *Player) Idle() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idle
}

// Start plays s. A fading performance is abandoned.
func (p *Player) Start(s *Sequence) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		return ErrPlaying
	}
	p.start(s)
	return nil
}

func (p *Player) start(s *Sequence) {
	if p.state == Idle {
		p.idle = make(chan struct{})
	}
	p.mix.Play(s)
	p.setState(Playing)
}

// Stop fades out the current performance.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return
	}
	p.mix.Release(stopRelease)
	p.setState(Stopping)
}

// Toggle stops a playing performance and starts s otherwise. It returns the
// new state.
func (p *Player) Toggle(s *Sequence) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		p.mix.Release(stopRelease)
		p.setState(Stopping)
	} else {
		p.start(s)
	}
	return p.state
}

func (p *Player) setState(s State) {
	if p.state == s {
		return
	}
	slog.Debug("player state", "from", p.state, "to", s)
	p.state = s
	if s == Idle {
		close(p.idle)
	}
}

// Read implements io.Reader.
func (p *Player) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	if p.state != Idle {
		var err error
		n, err = p.mix.Read(buf)
		if err != nil && err != io.EOF {
			return n, err
		}
		if p.mix.Finished() {
			p.setState(Idle)
		}
	}
	clear(buf[n:])
	return len(buf), nil
}
