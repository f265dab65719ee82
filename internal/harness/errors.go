package harness

import "errors"

var (
	// ErrMismatch is wrapped by Report.Err when the predictor and the oracle
	// disagree.
	ErrMismatch = errors.New("predicted and enumerated probabilities disagree")
	// ErrInvalidRange is returned when a sweep bound is below one.
	ErrInvalidRange = errors.New("sweep bounds must be positive integers")
)
