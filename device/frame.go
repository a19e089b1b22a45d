// Package device streams note sequences to an external synthesizer over a
// serial line.
package device

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	SOF0 = 0xAA
	SOF1 = 0x55

	CmdNote = 0x20
	CmdStop = 0x21

	payloadLen = 5
	frameLen   = 4 + payloadLen + 1
)

// ErrFrame is returned by Decode for malformed frames.
var ErrFrame = errors.New("device: malformed frame")

// Frame is one instruction to the device.
type Frame struct {
	Cmd      byte
	Index    uint16 // position of the note in the sequence
	Note     int8   // semitone offset from middle C
	Duration uint16 // milliseconds
}

// Encode builds the on-wire representation:
//
//	[SOF0][SOF1][LEN][CMD][index hi][index lo][note][dur hi][dur lo][CKS]
//
// LEN counts CMD and the payload. CKS is the XOR of LEN, CMD and the payload.
func (f Frame) Encode() []byte {
	out := make([]byte, frameLen)
	out[0], out[1] = SOF0, SOF1
	out[2] = payloadLen + 1
	out[3] = f.Cmd
	binary.BigEndian.PutUint16(out[4:], f.Index)
	out[6] = byte(f.Note)
	binary.BigEndian.PutUint16(out[7:], f.Duration)
	out[frameLen-1] = checksum(out[2 : frameLen-1])
	return out
}

// Decode parses a frame produced by Encode.
func Decode(b []byte) (Frame, error) {
	var f Frame
	if len(b) != frameLen {
		return f, fmt.Errorf("%w: %d bytes", ErrFrame, len(b))
	}
	if b[0] != SOF0 || b[1] != SOF1 {
		return f, fmt.Errorf("%w: bad start of frame", ErrFrame)
	}
	if b[2] != payloadLen+1 {
		return f, fmt.Errorf("%w: length %d", ErrFrame, b[2])
	}
	if cks := checksum(b[2 : frameLen-1]); cks != b[frameLen-1] {
		return f, fmt.Errorf("%w: checksum %#x, want %#x", ErrFrame, b[frameLen-1], cks)
	}
	f.Cmd = b[3]
	f.Index = binary.BigEndian.Uint16(b[4:])
	f.Note = int8(b[6])
	f.Duration = binary.BigEndian.Uint16(b[7:])
	return f, nil
}

func checksum(b []byte) byte {
	var c byte
	for _, v := range b {
		c ^= v
	}
	return c
}
