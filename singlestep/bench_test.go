package singlestep

import (
	"testing"

	"github.com/san-kum/odestep/ode"
)

func benchStep[T ode.Scalar](b *testing.B, rk Stepper[T], sys ode.System[T], y0 ode.State[T]) {
	y := y0.Clone()
	ynext := make(ode.State[T], len(y0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rk.Step(0.01, 0, sys, y, ynext)
		y, ynext = ynext, y
	}
}

func BenchmarkRK2(b *testing.B) {
	benchStep[float64](b, NewRK2[float64](2), oscillator{}, ode.State[float64]{1, 0})
}

func BenchmarkRK4(b *testing.B) {
	benchStep[float64](b, NewRK4[float64](2), oscillator{}, ode.State[float64]{1, 0})
}

func BenchmarkRK5(b *testing.B) {
	benchStep[float64](b, NewRK5[float64](2), oscillator{}, ode.State[float64]{1, 0})
}

func BenchmarkRK4Complex(b *testing.B) {
	benchStep[complex128](b, NewRK4[complex128](1), rotation, ode.State[complex128]{1})
}
