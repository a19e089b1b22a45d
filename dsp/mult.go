package dsp

// ComplexMult stores the element-wise product of f and g in y. The slices may
// alias.
func ComplexMult(y, yi, f, fi, g, gi []float64) {
	for i := range y {
		re := f[i]*g[i] - fi[i]*gi[i]
		im := f[i]*gi[i] + fi[i]*g[i]
		y[i], yi[i] = re, im
	}
}
