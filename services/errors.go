package services

import "errors"

var (
	// ErrForbidden means the acting account lacks authority for the
	// requested mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition means the requested status change is not legal
	// from the booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound means the referenced booking or account does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccountResolutionFailed means identity bootstrap could not
	// complete after exhausting its conflict-resolution fallbacks. It is
	// safe to retry on a later request; no partial account is left behind.
	ErrAccountResolutionFailed = errors.New("account resolution failed")
)
