package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooFewSamples = errors.New("too few samples for spectrum")
	ErrTooShort      = errors.New("signal too short for expected frequency")
)

const (
	// MinSamples is the shortest signal DominantFrequency accepts.
	MinSamples = 8
	// MinPeriods is how many periods of the expected frequency a signal
	// must span before CheckFrequency trusts its peak.
	MinPeriods = 2
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data after removing its mean and applying a Hann window.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 1.0
		if n > 1 {
			w = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in hertz of a
// signal sampled at sampleRate. The peak bin is refined by fitting a
// parabola through it and its neighbours.
func DominantFrequency(data []float64, sampleRate float64) (float64, error) {
	if len(data) < MinSamples {
		return 0, ErrTooFewSamples
	}
	if sampleRate <= 0 {
		return 0, errors.New("sample rate must be positive")
	}

	ps := PowerSpectrum(data)
	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	bin := float64(peak)
	if peak > 0 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}

	return bin * sampleRate / float64(len(data)), nil
}

// Resolution is the bin width in hertz for n samples at sampleRate.
func Resolution(n int, sampleRate float64) float64 {
	if n == 0 {
		return 0
	}
	return sampleRate / float64(n)
}

// CheckFrequency measures the dominant frequency of data and reports
// whether it lies within half a bin of want. Signals covering fewer than
// MinPeriods periods of want return ErrTooShort.
func CheckFrequency(data []float64, sampleRate, want float64) (float64, bool, error) {
	if sampleRate <= 0 || want <= 0 {
		return 0, false, errors.New("sample rate and expected frequency must be positive")
	}
	span := float64(len(data)) / sampleRate
	if span*want < MinPeriods {
		return 0, false, fmt.Errorf("%w: %.2fs covers %.2f periods of %.3f hz",
			ErrTooShort, span, span*want, want)
	}

	got, err := DominantFrequency(data, sampleRate)
	if err != nil {
		return 0, false, err
	}
	return got, math.Abs(got-want) <= Resolution(len(data), sampleRate)/2, nil
}
