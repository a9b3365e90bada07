// Package ranking scores normalized candidates against a job description by
// embedding similarity and returns a deterministic, score-sorted list.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jmorrow/compliant-ats/internal/types"
)

// DefaultConcurrency caps parallel embedding calls per run. The remote
// service's rate limit is the only shared resource, so fan-out stays bounded.
const DefaultConcurrency = 4

// Embedder converts one text into a fixed-dimension vector. The dimension
// must be stable for the lifetime of a ranking run.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Exclusion records a candidate dropped from a ranking because its embedding
// call failed.
type Exclusion struct {
	Name string
	Err  error
}

// Engine ranks candidates against a job description.
type Engine struct {
	embedder    Embedder
	concurrency int
}

// NewEngine creates a ranking engine. A non-positive concurrency falls back
// to DefaultConcurrency.
func NewEngine(embedder Embedder, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Engine{embedder: embedder, concurrency: concurrency}
}

// Rank embeds the job description once, fans out one embedding call per
// candidate under a bounded worker group, scores each candidate by cosine
// similarity, and returns the full list sorted by score descending. Ties keep
// their input order, so identical inputs always produce the same display
// order. Candidates whose embedding call fails are returned as exclusions
// rather than aborting the batch; an empty candidate list short-circuits
// before any remote call.
func (e *Engine) Rank(ctx context.Context, jobDescription string, candidates []types.NormalizedCandidate) ([]types.RankedCandidate, []Exclusion, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, nil, ErrEmptyJobDescription
	}
	if len(candidates) == 0 {
		return []types.RankedCandidate{}, nil, nil
	}

	// The job description vector gates every similarity score, so it is
	// embedded before the candidate fan-out starts.
	jdVector, err := e.embedder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, nil, &EmbeddingError{Cause: err}
	}

	type outcome struct {
		vector []float32
		err    error
	}
	outcomes := make([]outcome, len(candidates))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			// Tagged per-candidate result; a failure here must never
			// abort the batch.
			vector, embedErr := e.embedder.Embed(groupCtx, candidate.Text)
			outcomes[i] = outcome{vector: vector, err: embedErr}
			return nil
		})
	}
	// Sorting needs the complete score set; this join is the run's barrier.
	_ = g.Wait()

	ranked := make([]types.RankedCandidate, 0, len(candidates))
	var excluded []Exclusion
	for i, candidate := range candidates {
		out := outcomes[i]
		if out.err != nil {
			excluded = append(excluded, Exclusion{
				Name: candidate.Name,
				Err:  &EmbeddingError{Name: candidate.Name, Cause: out.err},
			})
			continue
		}
		if len(out.vector) != len(jdVector) {
			excluded = append(excluded, Exclusion{
				Name: candidate.Name,
				Err: &EmbeddingError{
					Name:  candidate.Name,
					Cause: fmt.Errorf("dimension mismatch: got %d, job description has %d", len(out.vector), len(jdVector)),
				},
			})
			continue
		}

		ranked = append(ranked, types.RankedCandidate{
			Name:                candidate.Name,
			Score:               Cosine(jdVector, out.vector),
			Text:                candidate.Text,
			NormalizationFailed: candidate.NormalizationFailed,
		})
	}

	// Stable sort: equal scores keep their input order, so the displayed
	// order is reproducible run to run.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, excluded, nil
}
