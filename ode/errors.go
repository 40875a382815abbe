package ode

import "errors"

// Domain errors for the stepper packages. Shape violations (wrong
// buffer length for a workspace) panic with these values; runtime
// conditions are returned.
var (
	// ErrDimension indicates a state or buffer whose length does not
	// match the workspace dimension.
	ErrDimension = errors.New("ode: dimension mismatch between state and workspace")

	// ErrOrder indicates a number of steps or an order outside the
	// supported range.
	ErrOrder = errors.New("ode: order out of range")

	// ErrCoefficients indicates coefficient slices whose length does
	// not match the method order.
	ErrCoefficients = errors.New("ode: coefficient length does not match method order")

	// ErrDiverged indicates the solution left the range of finite values.
	ErrDiverged = errors.New("ode: solution diverged (NaN or Inf detected)")
)
