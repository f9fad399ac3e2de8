package service

import "errors"

// ErrMatchNotFound is returned for an unknown match ID.
var ErrMatchNotFound = errors.New("match not found")

// ValidationError reports a malformed join or create payload. It is
// surfaced to the originating client and never corrupts session state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SlotConflictError reports a failed slot resolution. Reason is human
// readable and names the current occupants.
type SlotConflictError struct {
	Reason string
}

func (e *SlotConflictError) Error() string {
	return e.Reason
}
