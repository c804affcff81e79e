package analysis

import (
	"errors"
	"math"
	"testing"
)

func sine(n int, rate, omega, phase, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / rate
		out[i] = offset + 0.05*math.Sin(t*omega+phase)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		rate  float64
		omega float64
	}{
		{"breathing 20s", 1200, 60, 1.5},
		{"breathing 40s", 2400, 60, 1.5},
		{"faster", 600, 60, 2 * math.Pi},
		{"power of two", 1024, 30, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sine(tt.n, tt.rate, tt.omega, 0.7, 2)
			got, err := DominantFrequency(data, tt.rate)
			if err != nil {
				t.Fatal(err)
			}
			want := tt.omega / (2 * math.Pi)
			tol := Resolution(tt.n, tt.rate) / 2
			if math.Abs(got-want) > tol {
				t.Errorf("got %.4f hz, want %.4f ± %.4f", got, want, tol)
			}
		})
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2, 3}, 60); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
	if _, err := DominantFrequency(make([]float64, 64), 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestPowerSpectrumIgnoresOffset(t *testing.T) {
	ps := PowerSpectrum(sine(256, 64, 2*math.Pi*4, 0, 100))
	if len(ps) != 128 {
		t.Fatalf("expected 128 bins, got %d", len(ps))
	}
	if ps[0] > ps[16] {
		t.Errorf("dc bin %.4f should be below signal bin %.4f", ps[0], ps[16])
	}
}

func TestCheckFrequency(t *testing.T) {
	want := 1.5 / (2 * math.Pi)

	got, ok, err := CheckFrequency(sine(1170, 60, 1.5, 2.1, 0), 60, want)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("got %.4f hz, want %.4f", got, want)
	}

	if _, ok, err := CheckFrequency(sine(1200, 60, 3, 0, 0), 60, want); err != nil || ok {
		t.Errorf("a signal at twice the rate should not match: ok=%v err=%v", ok, err)
	}
}

func TestCheckFrequencyTooShort(t *testing.T) {
	want := 1.5 / (2 * math.Pi)
	// 30 frames is half a second, far below two breaths
	_, _, err := CheckFrequency(sine(30, 60, 1.5, 0, 0), 60, want)
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, _, err := CheckFrequency(sine(600, 60, 1.5, 0, 0), 0, want); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
