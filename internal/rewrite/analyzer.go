// Package rewrite provides the applicant-side analysis: a semantic fit score
// between a resume and a job description, and an honesty-constrained rewrite
// of the resume targeted at that job description.
package rewrite

import (
	"context"
	"strings"

	"github.com/jmorrow/compliant-ats/internal/llm"
	"github.com/jmorrow/compliant-ats/internal/prompts"
	"github.com/jmorrow/compliant-ats/internal/ranking"
	"github.com/jmorrow/compliant-ats/internal/types"
)

// Analyzer computes fit scores and rewritten resumes.
type Analyzer struct {
	client llm.Client
}

// New creates an Analyzer backed by the given LLM client.
func New(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// FitScore embeds the job description and the resume and returns their cosine
// similarity clipped to [0, 1] for display as a percentage.
func (a *Analyzer) FitScore(ctx context.Context, jobDescription, resumeText string) (float64, error) {
	jdVector, err := a.client.Embed(ctx, jobDescription)
	if err != nil {
		return 0, &ranking.EmbeddingError{Cause: err}
	}
	resumeVector, err := a.client.Embed(ctx, resumeText)
	if err != nil {
		return 0, &ranking.EmbeddingError{Cause: err}
	}

	score := ranking.Cosine(jdVector, resumeVector)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

// Rewrite produces a Markdown rewrite of the resume targeted at the job
// description. The instruction forbids invented experience: the output may
// only reorganize and rephrase what the source resume already contains.
func (a *Analyzer) Rewrite(ctx context.Context, jobDescription, resumeText string) (string, error) {
	instruction := prompts.MustGet("rewrite.json", "rewrite-v1")
	input := prompts.Format(prompts.MustGet("rewrite.json", "rewrite-user-v1"), map[string]string{
		"JobDescription":  jobDescription,
		"CandidateResume": resumeText,
	})

	rewritten, err := a.client.Generate(ctx, instruction, input, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rewritten), nil
}

// Analyze runs both steps and assembles the applicant-mode result.
func (a *Analyzer) Analyze(ctx context.Context, jobDescription, resumeText string) (*types.FitAnalysis, error) {
	score, err := a.FitScore(ctx, jobDescription, resumeText)
	if err != nil {
		return nil, err
	}

	rewritten, err := a.Rewrite(ctx, jobDescription, resumeText)
	if err != nil {
		return nil, err
	}

	return &types.FitAnalysis{
		FitScore:        score,
		RewrittenResume: rewritten,
	}, nil
}
