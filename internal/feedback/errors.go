package feedback

import "fmt"

// GenerationError indicates the remote generation call failed. It is returned
// to the caller as an explicit failure: no draft is produced and there is no
// automatic retry beyond the client's transient-error policy.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("feedback generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
