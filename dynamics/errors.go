package dynamics

import "errors"

// Failure taxonomy for the fit pipeline. Every error returned by Fit wraps
// exactly one of these, so callers can branch with errors.Is while the
// message carries the failing stage and invariant.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrConfiguration  = errors.New("invalid configuration")
	ErrNumerical      = errors.New("numerical failure")
	ErrNotImplemented = errors.New("not implemented")
)
