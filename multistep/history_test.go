package multistep_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odestep/multistep"
	"github.com/san-kum/odestep/ode"
	"github.com/san-kum/odestep/singlestep"
)

var _ = Describe("Workspace history", func() {
	var (
		ws  *multistep.Workspace[float64]
		sys ode.System[float64]
	)

	BeforeEach(func() {
		ws = multistep.NewWorkspace[float64](3, 2)
		sys = ode.SystemFunc[float64](func(x float64, y, dy ode.State[float64]) {
			dy[0] = y[1]
			dy[1] = -y[0]
		})
		for j := 0; j < 3; j++ {
			v := float64(j + 1)
			y := ode.State[float64]{v, -v}
			dy := make(ode.State[float64], 2)
			sys.Derive(-float64(j)*0.1, y, dy)
			ws.SetChunk(j, y, dy)
		}
	})

	It("slides every chunk one position older on Advance", func() {
		y0 := ws.StateChunk(0).Clone()
		y1 := ws.StateChunk(1).Clone()
		d0 := ws.DerivChunk(0).Clone()
		d1 := ws.DerivChunk(1).Clone()

		ynext := ode.State[float64]{9, 10}
		wantDeriv := make(ode.State[float64], 2)
		sys.Derive(0.1, ynext, wantDeriv)

		ws.Advance(0.1, sys, ynext)

		Expect(ws.StateChunk(0)).To(Equal(ynext))
		Expect(ws.StateChunk(1)).To(Equal(y0))
		Expect(ws.StateChunk(2)).To(Equal(y1))
		Expect(ws.DerivChunk(0)).To(Equal(wantDeriv))
		Expect(ws.DerivChunk(1)).To(Equal(d0))
		Expect(ws.DerivChunk(2)).To(Equal(d1))
	})

	It("leaves the window untouched during Step", func() {
		states := make([]ode.State[float64], 3)
		derivs := make([]ode.State[float64], 3)
		for j := 0; j < 3; j++ {
			states[j] = ws.StateChunk(j).Clone()
			derivs[j] = ws.DerivChunk(j).Clone()
		}

		coef := multistep.Coefficients{
			A: []float64{1, -1, 0, 0},
			B: []float64{0.5, 1, -0.5, 0},
		}
		y := make(ode.State[float64], 2)
		ws.Step(0.1, 0, sys, coef, 3, y)

		for j := 0; j < 3; j++ {
			Expect(ws.StateChunk(j)).To(Equal(states[j]))
			Expect(ws.DerivChunk(j)).To(Equal(derivs[j]))
		}
	})
})

var _ = Describe("Bootstrap", func() {
	growth := ode.SystemFunc[float64](func(x float64, y, dy ode.State[float64]) {
		dy[0] = y[0]
	})

	It("reproduces manual seeding step by step", func() {
		const m = 4
		h := 0.1

		auto := multistep.NewWorkspace[float64](m, 1)
		auto.Bootstrap(h, 0, growth, singlestep.NewRK4[float64](1), ode.State[float64]{1})

		manual := multistep.NewWorkspace[float64](m, 1)
		rk := singlestep.NewRK4[float64](1)
		y := ode.State[float64]{1}
		ynext := make(ode.State[float64], 1)
		for i := 0; i < m; i++ {
			dy := make(ode.State[float64], 1)
			growth.Derive(float64(i)*h, y, dy)
			manual.SetChunk(m-1-i, y, dy)
			rk.Step(h, float64(i)*h, growth, y, ynext)
			y, ynext = ynext, y
		}

		for j := 0; j < m; j++ {
			Expect(auto.StateChunk(j)).To(Equal(manual.StateChunk(j)))
			Expect(auto.DerivChunk(j)).To(Equal(manual.DerivChunk(j)))
		}
	})

	It("orders chunks newest to oldest around the initial condition", func() {
		const m = 4
		h := 0.05

		ws := multistep.NewWorkspace[float64](m, 1)
		ws.Bootstrap(h, 0, growth, singlestep.NewRK4[float64](1), ode.State[float64]{1})

		Expect(ws.StateChunk(m - 1)).To(Equal(ode.State[float64]{1}))
		for j := 0; j < m; j++ {
			x := float64(m-1-j) * h
			Expect(ws.StateChunk(j)[0]).To(BeNumerically("~", math.Exp(x), 1e-8))
			Expect(ws.DerivChunk(j)[0]).To(Equal(ws.StateChunk(j)[0]))
		}
	})
})

var _ = Describe("Corrector iteration", func() {
	It("is idempotent once converged", func() {
		h := 0.1
		riccati := ode.SystemFunc[float64](func(x float64, y, dy ode.State[float64]) {
			dy[0] = y[0] * y[0]
		})
		pred := multistep.Coefficients{A: []float64{1, -1, 0}, B: []float64{0, 1.5, -0.5}}
		corr := multistep.Coefficients{A: []float64{1, -1, 0}, B: []float64{0.5, 0.5, 0}}

		y0 := ode.State[float64]{1}
		y1 := ode.State[float64]{1 / (1 - h)}
		ws := multistep.NewWorkspace[float64](2, 1)
		ws.SetChunk(0, y1, ode.State[float64]{y1[0] * y1[0]})
		ws.SetChunk(1, y0, ode.State[float64]{y0[0] * y0[0]})

		y := make(ode.State[float64], 1)
		ws.Step(h, h, riccati, pred, 0, y)
		ws.Step(h, h, riccati, corr, 30, y)

		converged := y[0]
		ws.Step(h, h, riccati, corr, 1, y)
		Expect(math.Abs(y[0] - converged)).To(BeNumerically("<", 1e-12))
	})
})
