package dsp

// Convolve returns the linear convolution of f and g, of length
// len(f)+len(g)-1.
func Convolve(f, g []float64) []float64 {
	if len(f) == 0 || len(g) == 0 {
		return nil
	}
	size := len(f) + len(g) - 1
	n := NextPow2(size)

	fr, fi := make([]float64, n), make([]float64, n)
	gr, gi := make([]float64, n), make([]float64, n)
	copy(fr, f)
	copy(gr, g)

	FFT(fr, fi)
	FFT(gr, gi)
	ComplexMult(fr, fi, fr, fi, gr, gi)
	IFFT(fr, fi)

	// each forward pass scaled by 1/n, the product by 1/n²
	y := fr[:size]
	for i := range y {
		y[i] *= float64(n)
	}
	return y
}
