package common

import "errors"

// Error taxonomy shared by every stage of the decomposition pipeline.
// Callers match with errors.Is; call sites wrap with context.
var (
	// ErrShapeMismatch is returned when the signal and time axis differ in length
	ErrShapeMismatch = errors.New("emd: signal and time arrays must have the same length")

	// ErrInvalidInput covers malformed numeric input: non-increasing abscissas,
	// evaluation points outside the control span, too few samples or points
	ErrInvalidInput = errors.New("emd: invalid input")

	// ErrUnsupportedMethod is returned for an unknown spline kind
	ErrUnsupportedMethod = errors.New("emd: unsupported interpolation method")

	// ErrInternalConsistency marks an algorithm invariant violation.
	// It is never recovered from.
	ErrInternalConsistency = errors.New("emd: internal consistency violated")
)
