package dsp

import (
	"encoding/binary"
	"math"
)

// FromPCM16 decodes signed 16-bit little-endian samples into [-1, 1).
func FromPCM16(b []byte) []float64 {
	x := make([]float64, len(b)/2)
	for i := range x {
		x[i] = float64(int16(binary.LittleEndian.Uint16(b[2*i:]))) / 32768
	}
	return x
}

// ToPCM16 encodes samples as signed 16-bit little-endian, clipping to [-1, 1].
func ToPCM16(x []float64) []byte {
	b := make([]byte, 2*len(x))
	for i, v := range x {
		v = math.Max(-1, math.Min(1, v))
		binary.LittleEndian.PutUint16(b[2*i:], uint16(int16(v*math.MaxInt16)))
	}
	return b
}

// maxAnalysis bounds the window PeakFrequency transforms.
const maxAnalysis = 1 << 16

// PeakFrequency returns the frequency in Hz of the strongest spectral peak
// of x. It returns 0 for fewer than 4 samples.
func PeakFrequency(x []float64, sampleRate int) float64 {
	n := 1
	for n*2 <= len(x) && n*2 <= maxAnalysis {
		n *= 2
	}
	if n < 4 {
		return 0
	}

	re, im := make([]float64, n), make([]float64, n)
	for i, w := range Hann(n) {
		re[i] = x[i] * w
	}
	FFT(re, im)

	mag := make([]float64, n/2)
	best := 1
	for k := 1; k < n/2; k++ {
		mag[k] = math.Hypot(re[k], im[k])
		if mag[k] > mag[best] {
			best = k
		}
	}

	// parabolic interpolation of the log spectrum around the peak bin
	offset := 0.0
	if best > 1 && best < n/2-1 && mag[best-1] > 0 && mag[best+1] > 0 {
		a, b, c := math.Log(mag[best-1]), math.Log(mag[best]), math.Log(mag[best+1])
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	return (float64(best) + offset) * float64(sampleRate) / float64(n)
}
