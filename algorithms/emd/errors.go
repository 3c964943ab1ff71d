package emd

import "github.com/RyanBlaney/sonido-emd/algorithms/common"

// Errors returned by Decompose. Match with errors.Is.
var (
	ErrShapeMismatch       = common.ErrShapeMismatch
	ErrInvalidInput        = common.ErrInvalidInput
	ErrUnsupportedMethod   = common.ErrUnsupportedMethod
	ErrInternalConsistency = common.ErrInternalConsistency
)
