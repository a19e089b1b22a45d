package prelude

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rwelin/prelude/dsp"
)

// smoothTaps is the length of the low-pass kernel used by RenderWAV.
const smoothTaps = 63

// RenderWAV plays s on m from the start and writes the result to w as a WAVE
// file. A positive smooth is the cutoff in Hz of a low-pass filter applied
// to the whole rendering.
func RenderWAV(w io.Writer, m *Mix, s *Sequence, smooth float64) (int64, error) {
	m.Play(s)
	if smooth <= 0 {
		return WriteWAV(w, m, m.SampleRate)
	}

	pcm, err := io.ReadAll(m)
	if err != nil {
		return 0, fmt.Errorf("render pcm: %w", err)
	}
	cutoff := smooth / float64(m.SampleRate)
	if cutoff >= 0.5 {
		return 0, fmt.Errorf("smooth cutoff %v Hz above Nyquist", smooth)
	}
	y := dsp.LowPass(dsp.FromPCM16(pcm), cutoff, smoothTaps)
	return WriteWAV(w, bytes.NewReader(dsp.ToPCM16(y)), m.SampleRate)
}
