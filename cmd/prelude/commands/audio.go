package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// outputLatency covers audio still queued in the device buffer when the
// player reports idle.
const outputLatency = 250 * time.Millisecond

// speaker feeds a reader of 16-bit mono PCM to the default audio device.
type speaker struct {
	ctx    *oto.Context
	player oto.Player
}

func openSpeaker(sampleRate int, r io.Reader) (*speaker, error) {
	ctx, ready, err := oto.NewContext(sampleRate, 1, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	p := ctx.NewPlayer(r)
	p.Play()
	return &speaker{ctx: ctx, player: p}, nil
}

// Drain waits for buffered audio to reach the speakers.
func (s *speaker) Drain() {
	time.Sleep(outputLatency)
}

func (s *speaker) Close() error {
	if err := s.player.Err(); err != nil {
		s.player.Close()
		return fmt.Errorf("audio playback: %w", err)
	}
	return s.player.Close()
}

// pace consumes r in real time when no audio device is available, so the
// player still advances through its states.
func pace(ctx context.Context, r io.Reader, sampleRate int) {
	const tick = 20 * time.Millisecond
	buf := make([]byte, 2*sampleRate*int(tick/time.Millisecond)/1000)
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := r.Read(buf); err != nil {
				logger.Warn("pace audio", "error", err)
				return
			}
		}
	}
}
