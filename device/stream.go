package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"go.bug.st/serial"
)

// Port is an open serial device.
type Port struct {
	serial.Port
	name string
}

// Open opens the named serial device at the given baud rate.
func Open(name string, baud int) (*Port, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("device: open %s: %w", name, err)
	}
	slog.Info("serial: port opened", "device", name, "baud", baud)
	return &Port{Port: p, name: name}, nil
}

// Close closes the port.
func (p *Port) Close() error {
	slog.Info("serial: closing port", "device", p.name)
	return p.Port.Close()
}

// Ports lists the serial devices present on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Frames converts notes into note frames followed by a stop frame.
func Frames(notes []int, interval time.Duration) ([]Frame, error) {
	if len(notes) > math.MaxUint16 {
		return nil, fmt.Errorf("device: %d notes exceed the frame index", len(notes))
	}
	ms := interval.Milliseconds()
	if ms < 0 || ms > math.MaxUint16 {
		return nil, fmt.Errorf("device: note duration %v out of range", interval)
	}
	frames := make([]Frame, 0, len(notes)+1)
	for i, n := range notes {
		if n < math.MinInt8 || n > math.MaxInt8 {
			return nil, fmt.Errorf("device: note %d at %d out of range", n, i)
		}
		frames = append(frames, Frame{Cmd: CmdNote, Index: uint16(i), Note: int8(n), Duration: uint16(ms)})
	}
	frames = append(frames, Frame{Cmd: CmdStop, Index: uint16(len(notes))})
	return frames, nil
}

// Stream sends one frame per note to w, interval apart, then a stop frame.
// If ctx is cancelled the stop frame is still sent.
func Stream(ctx context.Context, w io.Writer, notes []int, interval time.Duration) error {
	frames, err := Frames(notes, interval)
	if err != nil {
		return err
	}
	stop := frames[len(frames)-1]

	ticker := time.NewTicker(max(interval, time.Millisecond))
	defer ticker.Stop()

	for i, f := range frames[:len(frames)-1] {
		if _, err := w.Write(f.Encode()); err != nil {
			return fmt.Errorf("device: write frame %d: %w", i, err)
		}
		slog.Debug("serial: frame sent", "index", f.Index, "note", f.Note)

		select {
		case <-ctx.Done():
			stop.Index = f.Index
			if _, err := w.Write(stop.Encode()); err != nil {
				return fmt.Errorf("device: write stop: %w", err)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if _, err := w.Write(stop.Encode()); err != nil {
		return fmt.Errorf("device: write stop: %w", err)
	}
	return nil
}
