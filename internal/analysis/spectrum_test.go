package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumPeak(t *testing.T) {
	const (
		freq = 2.0
		h    = 0.01
		n    = 1000
	)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) * h)
	}

	s, err := PowerSpectrum(samples, h)
	if err != nil {
		t.Fatalf("spectrum failed: %v", err)
	}

	if len(s.Freqs) != n/2 || len(s.Power) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(s.Freqs))
	}

	got := s.DominantFrequency()
	if math.Abs(got-freq) > 0.11 {
		t.Errorf("dominant frequency: got %.4f, expected about %.4f", got, freq)
	}
}

func TestPowerSpectrumTwoTones(t *testing.T) {
	const h = 0.005
	n := 2000
	samples := make([]float64, n)
	for i := range samples {
		x := float64(i) * h
		// Strong 3 Hz tone with a weak 7 Hz overtone.
		samples[i] = math.Sin(2*math.Pi*3*x) + 0.2*math.Sin(2*math.Pi*7*x)
	}

	s, err := PowerSpectrum(samples, h)
	if err != nil {
		t.Fatalf("spectrum failed: %v", err)
	}
	got := s.DominantFrequency()
	if math.Abs(got-3.0) > 0.15 {
		t.Errorf("dominant frequency: got %.4f, expected about 3", got)
	}
}

func TestPowerSpectrumErrors(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1, 2, 3}, 0.1); err == nil {
		t.Error("expected error for too few samples")
	}
	if _, err := PowerSpectrum(make([]float64, 16), 0); err == nil {
		t.Error("expected error for zero spacing")
	}
}
