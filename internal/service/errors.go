// Package service implements the booking engine: the reservation
// conflict resolver, the trip catalog manager and the fullness query.
// It sits between the HTTP handlers and the repositories and owns the
// error taxonomy surfaced to callers.
package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrForbidden is returned when a privileged operation is attempted
// without a privileged session.  Recoverable by re-authenticating.
var ErrForbidden = errors.New("forbidden")

// ErrTimeout is returned when a record-store call exceeds its
// deadline.  A timed-out insert may still have committed on the
// server, so clients should refresh the seatmap before retrying.
var ErrTimeout = errors.New("store timeout")

// ErrStore wraps any other record-store failure.  It is surfaced to
// the user as a generic failure message; the underlying cause is kept
// in the chain for logs.
var ErrStore = errors.New("store failure")

// ValidationError reports malformed or missing input.  It is raised
// before any store call so the caller can correct the form without a
// round trip.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// storeErr translates a failed store call into the service taxonomy:
// deadline expiry becomes ErrTimeout, everything else is wrapped in
// ErrStore.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
