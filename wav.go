package prelude

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const wavHeaderLen = 44

// ErrWAV is returned by ReadWAV for input that is not a file WriteWAV
// would produce.
var ErrWAV = errors.New("prelude: not a 16-bit mono PCM wave file")

// WriteWAV reads r to the end as 16-bit mono PCM and writes it to w as a
// WAVE file.
func WriteWAV(w io.Writer, r io.Reader, sampleRate int) (int64, error) {
	var data bytes.Buffer
	if _, err := io.Copy(&data, r); err != nil {
		return 0, fmt.Errorf("render pcm: %w", err)
	}

	var h [wavHeaderLen]byte
	le := binary.LittleEndian
	copy(h[0:], "RIFF")                        // ChunkID
	le.PutUint32(h[4:], uint32(36+data.Len())) // ChunkSize
	copy(h[8:], "WAVE")                        // Format
	copy(h[12:], "fmt ")                       // Subchunk1ID
	le.PutUint32(h[16:], 16)                   // Subchunk1Size PCM
	le.PutUint16(h[20:], 1)                    // AudioFormat PCM
	le.PutUint16(h[22:], 1)                    // NumChannels Mono
	le.PutUint32(h[24:], uint32(sampleRate))   // SampleRate
	le.PutUint32(h[28:], uint32(sampleRate*2)) // ByteRate SampleRate * 1 * 16/8
	le.PutUint16(h[32:], 2)                    // BlockAlign
	le.PutUint16(h[34:], 16)                   // BitsPerSample
	copy(h[36:], "data")                       // Subchunk2ID
	le.PutUint32(h[40:], uint32(data.Len()))   // Subchunk2Size

	n, err := w.Write(h[:])
	if err != nil {
		return int64(n), err
	}
	m, err := data.WriteTo(w)
	return int64(n) + m, err
}

// ReadWAV reads a canonical 44-byte header WAVE file holding 16-bit mono PCM
// and returns its sample rate and sample data.
func ReadWAV(r io.Reader) (sampleRate int, pcm []byte, err error) {
	var h [wavHeaderLen]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return 0, nil, fmt.Errorf("read wav header: %w", err)
	}
	le := binary.LittleEndian
	if string(h[0:4]) != "RIFF" || string(h[8:12]) != "WAVE" ||
		string(h[12:16]) != "fmt " || string(h[36:40]) != "data" {
		return 0, nil, ErrWAV
	}
	if le.Uint16(h[20:]) != 1 || le.Uint16(h[22:]) != 1 || le.Uint16(h[34:]) != 16 {
		return 0, nil, ErrWAV
	}
	size := int64(le.Uint32(h[40:]))
	pcm, err = io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return 0, nil, fmt.Errorf("read wav data: %w", err)
	}
	if int64(len(pcm)) != size {
		return 0, nil, fmt.Errorf("read wav data: %w", io.ErrUnexpectedEOF)
	}
	return int(le.Uint32(h[24:])), pcm, nil
}
