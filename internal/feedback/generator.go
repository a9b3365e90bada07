// Package feedback drafts legally-constrained rejection feedback for one
// candidate. The instruction given to the generation service is the system's
// core legal-risk mitigation: it restricts the draft to hard skills, objective
// metrics, demonstrated specificity and depth mismatches, and forbids every
// personality or protected-attribute topic. Drafts are returned for mandatory
// human review; nothing here sends, stores or transmits them on a candidate's
// behalf.
package feedback

import (
	"context"
	"strings"

	"github.com/jmorrow/compliant-ats/internal/llm"
	"github.com/jmorrow/compliant-ats/internal/prompts"
	"github.com/jmorrow/compliant-ats/internal/types"
)

// Generator produces compliance-constrained rejection drafts.
type Generator struct {
	client llm.Client
}

// New creates a Generator backed by the given LLM client.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces a rejection draft for one candidate from the job
// description and the candidate's cleaned resume text. The returned draft
// carries the result of a red-zone term scan so the human reviewer sees any
// violation up front; a failed remote call returns a *GenerationError and no
// draft.
func (g *Generator) Generate(ctx context.Context, jobDescription, candidateText string) (*types.FeedbackDraft, error) {
	instruction := prompts.MustGet("feedback.json", "feedback-v1")
	input := prompts.Format(prompts.MustGet("feedback.json", "feedback-user-v1"), map[string]string{
		"JobDescription":  jobDescription,
		"CandidateResume": candidateText,
	})

	body, err := g.client.Generate(ctx, instruction, input, false)
	if err != nil {
		return nil, &GenerationError{Cause: err}
	}

	body = strings.TrimSpace(body)
	return &types.FeedbackDraft{
		Body:       body,
		Violations: CheckRedZoneTerms(body),
	}, nil
}
