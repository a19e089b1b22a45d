package dsp

import "math"

// Hann returns a symmetric Hann window of n points.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		v := math.Sin(math.Pi * float64(i) / float64(n-1))
		w[i] = v * v
	}
	return w
}
