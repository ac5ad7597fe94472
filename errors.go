package fourslice

import "errors"

// Error kinds named in the error-handling design. Construction-time failures
// wrap one of these with fmt.Errorf("%w: ..."); hot-path lookups use
// (T, bool) instead and never return these directly.
var (
	// ErrInvalidParameter is returned by shape construction when an
	// argument is non-positive or otherwise malformed.
	ErrInvalidParameter = errors.New("fourslice: invalid parameter")

	// ErrResourceExhausted names the resource-exhaustion kind. No function
	// in this module returns it: NewSlicePipeline clamps an oversized
	// triangle capacity to the device limit, and wraps buffer or pipeline
	// creation failures with their own cause rather than with this value.
	ErrResourceExhausted = errors.New("fourslice: resource exhausted")

	// ErrDegenerate names the all-zero-rotor case. Rotor4.Normalize reports
	// that case by panicking with a message string, not with this value.
	ErrDegenerate = errors.New("fourslice: degenerate rotor")
)

// InvalidKey is not an error value: key lookups return (value, false).
// Capacity is not one either: triangles past the output buffer's capacity
// are dropped by the compute kernel with no signal to the host. Both are
// named here so the five error kinds are all discoverable in one file.
