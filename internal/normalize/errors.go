package normalize

import "fmt"

// Error indicates the remote cleaning call failed. It never excludes the
// candidate from a run: callers substitute MarkerText and proceed.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("normalization failed: %v", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
