package dsp

import "math"

// Sinc returns a Hann-windowed sinc low-pass kernel of n taps with unity DC
// gain. cutoff is a fraction of the sample rate in (0, 0.5).
func Sinc(n int, cutoff float64) []float64 {
	if n < 1 || cutoff <= 0 || cutoff >= 0.5 {
		panic("dsp: invalid sinc kernel")
	}
	w := Hann(n)
	mid := float64(n-1) / 2
	var sum float64
	for i := range w {
		x := 2 * math.Pi * cutoff * (float64(i) - mid)
		v := 1.0
		if x != 0 {
			v = math.Sin(x) / x
		}
		w[i] *= v
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// LowPass filters x with an n-tap Sinc kernel and compensates the kernel
// delay, so the result lines up with x and has the same length.
func LowPass(x []float64, cutoff float64, n int) []float64 {
	if len(x) == 0 {
		return nil
	}
	y := Convolve(x, Sinc(n, cutoff))
	delay := (n - 1) / 2
	return y[delay : delay+len(x)]
}
