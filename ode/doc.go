// Package ode defines the shared primitives for the fixed-step ODE
// integrators in this module:
//
//   - [State]: vector holding the dependent variables
//   - [System]: interface for first order systems (dy/dx = f(x, y))
//   - [Scalar]: element type constraint, real or complex
//
// A single generic implementation of every integrator covers both
// float64 and complex128 systems. All step routines write results into
// caller-supplied buffers and evaluate derivatives into preallocated
// scratch, so stepping allocates nothing after workspace construction.
//
// # Example
//
//	decay := ode.SystemFunc[float64](func(x float64, y, dy ode.State[float64]) {
//		dy[0] = -y[0]
//	})
//	rk := singlestep.NewRK4[float64](1)
//	y, ynext := ode.State[float64]{1}, make(ode.State[float64], 1)
//	rk.Step(0.01, 0, decay, y, ynext)
//
// # Thread Safety
//
// Workspaces own scratch buffers and are NOT safe for concurrent use.
// Run concurrent integrations on separate workspaces.
package ode
