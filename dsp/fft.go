package dsp

import "math"

// transform is an in-place iterative radix-2 FFT. sign is -1 for the forward
// transform and +1 for the inverse.
func transform(re, im []float64, sign float64) {
	n := len(re)
	if n != len(im) || n&(n-1) != 0 {
		panic("dsp: fft length must be a power of two")
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		theta := sign * 2 * math.Pi / float64(size)
		wr, wi := math.Cos(theta), math.Sin(theta)
		for start := 0; start < n; start += size {
			ur, ui := 1.0, 0.0
			for k := start; k < start+half; k++ {
				tr := ur*re[k+half] - ui*im[k+half]
				ti := ur*im[k+half] + ui*re[k+half]
				re[k+half] = re[k] - tr
				im[k+half] = im[k] - ti
				re[k] += tr
				im[k] += ti
				ur, ui = ur*wr-ui*wi, ur*wi+ui*wr
			}
		}
	}
}

// FFT transforms re + i·im in place. The result is scaled by 1/n so that
// IFFT undoes it exactly.
func FFT(re, im []float64) {
	transform(re, im, -1)
	scale := 1 / float64(len(re))
	for i := range re {
		re[i] *= scale
		im[i] *= scale
	}
}

// IFFT is the inverse of FFT.
func IFFT(re, im []float64) {
	transform(re, im, 1)
}

// NextPow2 returns the smallest power of two not below n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
