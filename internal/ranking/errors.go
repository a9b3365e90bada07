package ranking

import (
	"errors"
	"fmt"
)

// ErrEmptyJobDescription is returned when the job description is blank.
// An empty job description is a caller-side validation failure, not a
// per-candidate condition.
var ErrEmptyJobDescription = errors.New("job description is empty")

// EmbeddingError indicates the remote embedding call failed for one text.
// Unlike a normalization failure there is no safe substitute (a zero vector
// would corrupt the ranking silently), so the affected candidate is excluded
// from the final list.
type EmbeddingError struct {
	Name  string
	Cause error
}

func (e *EmbeddingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("embedding failed for %s: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %v", e.Cause)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
