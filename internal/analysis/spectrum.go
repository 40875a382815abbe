// Package analysis provides frequency-domain views of trajectories.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is the one-sided magnitude spectrum of a uniformly sampled
// signal. Freqs are in cycles per unit of the independent variable.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum computes the one-sided spectrum of samples spaced h
// apart. A Hann window is applied first so segments holding a fractional
// number of periods do not smear across bins.
func PowerSpectrum(samples []float64, h float64) (*Spectrum, error) {
	if len(samples) < 4 {
		return nil, fmt.Errorf("analysis: need at least 4 samples, got %d", len(samples))
	}
	if h <= 0 {
		return nil, fmt.Errorf("analysis: sample spacing must be positive, got %g", h)
	}

	n := len(samples)
	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * w
	}

	spectrum := fft.FFTReal(windowed)

	half := n / 2
	s := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		s.Freqs[i] = float64(i) / (float64(n) * h)
		s.Power[i] = cmplx.Abs(spectrum[i])
	}
	return s, nil
}

// DominantFrequency returns the frequency of the strongest bin, skipping
// the DC component.
func (s *Spectrum) DominantFrequency() float64 {
	idx := floats.MaxIdx(s.Power[1:]) + 1
	return s.Freqs[idx]
}
