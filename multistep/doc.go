// Package multistep implements linear multistep integration with
// explicit and implicit (fixed-point corrector) modes, plus the
// Adams-Bashforth-Moulton predictor-corrector presets of orders 4
// and 6.
//
// An m-step method computes y at x+h from the m most recent grid
// points through
//
//	a[0]·y(x+h) + sum_{k=1..m} a[k]·y(x-(k-1)h) =
//		h · sum_{k=0..m} b[k]·f(x-(k-1)h)
//
// with a[0] = 1 and, for explicit methods, b[0] = 0. The previous
// points live in a [Workspace]: two concatenated buffers of chunks
// ordered newest to oldest, so chunk j holds the state and derivative
// at x - j·h. [Workspace.Advance] slides the window after each accepted
// step; [Workspace.Bootstrap] seeds it from a single initial condition
// using a single-step integrator.
//
// The engine never validates that the history actually corresponds to
// consecutive grid points. That precondition is established by
// Bootstrap (or explicit seeding) and preserved by calling Advance
// exactly once per accepted step, in increasing x order.
package multistep
