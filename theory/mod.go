package theory

// Mod returns the value in [0, n) congruent to x modulo n. It panics if n is
// not positive.
func Mod(x, n int) int {
	if n <= 0 {
		panic("theory: non-positive modulus")
	}
	return ((x % n) + n) % n
}

// floorDiv rounds toward negative infinity.
func floorDiv(x, n int) int {
	q := x / n
	if x%n != 0 && (x < 0) != (n < 0) {
		q--
	}
	return q
}
