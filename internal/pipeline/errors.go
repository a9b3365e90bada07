package pipeline

import (
	"fmt"
	"strings"

	"github.com/jmorrow/compliant-ats/internal/ranking"
	"github.com/jmorrow/compliant-ats/internal/types"
)

// DuplicateNameError indicates two documents in one run share a name, which
// would break score attribution.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate document name in run: %s", e.Name)
}

// validateRun checks caller-side input invariants before any remote work.
func validateRun(jobDescription string, docs []types.Document) error {
	if strings.TrimSpace(jobDescription) == "" {
		return ranking.ErrEmptyJobDescription
	}

	seen := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if seen[doc.Name] {
			return &DuplicateNameError{Name: doc.Name}
		}
		seen[doc.Name] = true
	}
	return nil
}
