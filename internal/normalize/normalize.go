// Package normalize cleans raw extracted resume text through a deterministic
// LLM call: noise (page numbers, repeated headers, contact metadata) is
// stripped and the remaining content is structured under the fixed tag
// vocabulary [SUMMARY], [SKILLS], [EXPERIENCE], [EDUCATION].
package normalize

import (
	"context"
	"errors"
	"strings"

	"github.com/jmorrow/compliant-ats/internal/llm"
	"github.com/jmorrow/compliant-ats/internal/prompts"
)

// markerPrefix is the visible error-marker prefix substituted for a
// candidate's text when the cleaning call fails. The marker flows into
// ranking on purpose: the candidate stays in the run and the recruiter sees
// why the score is low.
const markerPrefix = "Error during cleaning: "

// Normalizer sends raw resume text to the generation service under the
// versioned normalizer instruction.
type Normalizer struct {
	client llm.Client
}

// New creates a Normalizer backed by the given LLM client.
func New(client llm.Client) *Normalizer {
	return &Normalizer{client: client}
}

// Normalize converts raw extracted text into tagged, cleaned text. The call
// runs at temperature zero, so identical input yields identical output and
// already-normalized text passes through with its tags and content intact.
func (n *Normalizer) Normalize(ctx context.Context, rawText string) (string, error) {
	instruction := prompts.MustGet("normalizer.json", "normalizer-v1")

	cleaned, err := n.client.Generate(ctx, instruction, rawText, true)
	if err != nil {
		return "", &Error{Cause: err}
	}

	return strings.TrimSpace(cleaned), nil
}

// MarkerText builds the error-marker string for a failed normalization.
// The marker names the underlying cause, not the wrapper.
func MarkerText(err error) string {
	var normErr *Error
	if errors.As(err, &normErr) && normErr.Cause != nil {
		err = normErr.Cause
	}
	return markerPrefix + err.Error()
}

// IsMarkerText reports whether a candidate's text is a normalization
// error marker rather than cleaned resume content.
func IsMarkerText(text string) bool {
	return strings.HasPrefix(text, markerPrefix)
}
