package dsp

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestFFTRoundTrip(t *testing.T) {
	re := []float64{1, -2, 3.5, 0, 0.25, 7, -1, 2}
	im := make([]float64, len(re))
	orig := append([]float64(nil), re...)

	FFT(re, im)
	IFFT(re, im)

	for i := range re {
		if !near(re[i], orig[i], 1e-12) || !near(im[i], 0, 1e-12) {
			t.Fatalf("sample %d = %v%+vi, want %v", i, re[i], im[i], orig[i])
		}
	}
}

func TestFFTImpulse(t *testing.T) {
	re := make([]float64, 16)
	im := make([]float64, 16)
	re[0] = 1
	FFT(re, im)
	for k := range re {
		if !near(re[k], 1.0/16, 1e-12) || !near(im[k], 0, 1e-12) {
			t.Fatalf("bin %d = %v%+vi", k, re[k], im[k])
		}
	}
}

func TestFFTPanicsOnBadLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FFT of 6 samples did not panic")
		}
	}()
	FFT(make([]float64, 6), make([]float64, 6))
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ n, want int }{{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}}
	for _, tt := range tests {
		if got := NextPow2(tt.n); got != tt.want {
			t.Errorf("NextPow2(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestConvolve(t *testing.T) {
	got := Convolve([]float64{1, 2, 3}, []float64{0, 1, 0.5})
	want := []float64{0, 1, 2.5, 4, 1.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !near(got[i], want[i], 1e-9) {
			t.Errorf("y[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if Convolve(nil, want) != nil {
		t.Error("Convolve(nil, g) != nil")
	}
}

func TestHann(t *testing.T) {
	w := Hann(9)
	if !near(w[0], 0, 1e-12) || !near(w[8], 0, 1e-12) || !near(w[4], 1, 1e-12) {
		t.Errorf("Hann(9) = %v", w)
	}
	if w := Hann(1); w[0] != 1 {
		t.Errorf("Hann(1) = %v", w)
	}
}

func TestSinc(t *testing.T) {
	k := Sinc(31, 0.1)
	var sum float64
	for _, v := range k {
		sum += v
	}
	if !near(sum, 1, 1e-12) {
		t.Errorf("kernel sum = %v", sum)
	}
	for i := range k {
		if !near(k[i], k[len(k)-1-i], 1e-12) {
			t.Fatalf("kernel not symmetric at %d", i)
		}
	}
}

func TestLowPass(t *testing.T) {
	const n = 512
	dc := make([]float64, n)
	nyq := make([]float64, n)
	for i := range dc {
		dc[i] = 1
		nyq[i] = float64(1 - 2*(i%2))
	}

	y := LowPass(dc, 0.1, 31)
	if len(y) != n {
		t.Fatalf("len = %d", len(y))
	}
	for i := 32; i < n-32; i++ {
		if !near(y[i], 1, 1e-6) {
			t.Fatalf("dc[%d] = %v", i, y[i])
		}
	}

	y = LowPass(nyq, 0.1, 31)
	for i := 32; i < n-32; i++ {
		if math.Abs(y[i]) > 0.02 {
			t.Fatalf("nyquist[%d] = %v, not attenuated", i, y[i])
		}
	}
}

func TestPeakFrequency(t *testing.T) {
	const rate = 44100
	for _, f := range []float64{220, 261.63, 440, 1046.5} {
		x := make([]float64, rate/2)
		for i := range x {
			x[i] = 0.5 * math.Sin(2*math.Pi*f*float64(i)/rate)
		}
		if got := PeakFrequency(x, rate); !near(got, f, 1) {
			t.Errorf("PeakFrequency(%v Hz) = %v", f, got)
		}
	}
	if got := PeakFrequency([]float64{1, 2}, rate); got != 0 {
		t.Errorf("PeakFrequency(short) = %v", got)
	}
}

func TestPCM16(t *testing.T) {
	x := []float64{0, 0.5, -0.5, 2, -2}
	y := FromPCM16(ToPCM16(x))
	want := []float64{0, 0.5, -0.5, 1, -1}
	for i := range want {
		if !near(y[i], want[i], 1e-4) {
			t.Errorf("sample %d = %v, want %v", i, y[i], want[i])
		}
	}
}
