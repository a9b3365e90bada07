// Package pipeline orchestrates one screening run: extract each uploaded
// document, normalize it through the cleaning model, then rank every surviving
// candidate against the job description. No failure of a single document is
// allowed to abort the batch.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmorrow/compliant-ats/internal/extraction"
	"github.com/jmorrow/compliant-ats/internal/llm"
	"github.com/jmorrow/compliant-ats/internal/normalize"
	"github.com/jmorrow/compliant-ats/internal/ranking"
	"github.com/jmorrow/compliant-ats/internal/types"
)

// Options configures a screening pipeline.
type Options struct {
	// Concurrency bounds parallel document processing and embedding fan-out.
	// Zero means ranking.DefaultConcurrency.
	Concurrency int
	// Verbose enables detailed progress logging.
	Verbose bool
}

// Pipeline wires the extractor, normalizer and ranking engine together.
type Pipeline struct {
	normalizer  *normalize.Normalizer
	engine      *ranking.Engine
	concurrency int
	verbose     bool
}

// New creates a screening pipeline on top of an LLM client.
func New(client llm.Client, opts *Options) *Pipeline {
	if opts == nil {
		opts = &Options{}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = ranking.DefaultConcurrency
	}
	return &Pipeline{
		normalizer:  normalize.New(client),
		engine:      ranking.NewEngine(client, concurrency),
		concurrency: concurrency,
		verbose:     opts.Verbose,
	}
}

// Screen runs one complete screening: extraction and normalization run
// concurrently per document under a bounded worker group, then all surviving
// candidates are ranked. Documents that cannot be parsed or carry an
// unsupported format are skipped with a recorded reason; a failed
// normalization keeps its candidate in the run under the visible error-marker
// text; a failed embedding excludes only that candidate.
func (p *Pipeline) Screen(ctx context.Context, jobDescription string, docs []types.Document) (*types.ScreeningResult, error) {
	if err := validateRun(jobDescription, docs); err != nil {
		return nil, err
	}

	runID := uuid.New()
	if p.verbose {
		log.Printf("[VERBOSE] run %s: screening %d documents", runID, len(docs))
	}

	// Per-document tagged outcomes, indexed to preserve input order for the
	// stable tie-break downstream.
	candidates := make([]*types.NormalizedCandidate, len(docs))
	skips := make([]*types.SkippedDocument, len(docs))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			candidates[i], skips[i] = p.processDocument(groupCtx, doc)
			return nil
		})
	}
	_ = g.Wait()

	var toRank []types.NormalizedCandidate
	var skipped []types.SkippedDocument
	for i := range docs {
		if skips[i] != nil {
			skipped = append(skipped, *skips[i])
			continue
		}
		toRank = append(toRank, *candidates[i])
	}

	ranked, excluded, err := p.engine.Rank(ctx, jobDescription, toRank)
	if err != nil {
		return nil, err
	}
	for _, ex := range excluded {
		skipped = append(skipped, types.SkippedDocument{
			Name:   ex.Name,
			Stage:  types.StageEmbedding,
			Reason: ex.Err.Error(),
		})
	}

	if p.verbose {
		log.Printf("[VERBOSE] run %s: ranked %d candidates, skipped %d", runID, len(ranked), len(skipped))
	}

	return &types.ScreeningResult{
		RunID:          runID,
		JobDescription: jobDescription,
		Ranked:         ranked,
		Skipped:        skipped,
		CompletedAt:    time.Now().UTC(),
	}, nil
}

// processDocument extracts and normalizes one document. Exactly one of the
// return values is non-nil.
func (p *Pipeline) processDocument(ctx context.Context, doc types.Document) (*types.NormalizedCandidate, *types.SkippedDocument) {
	rawText, err := extraction.Extract(doc)
	if err != nil {
		if p.verbose {
			log.Printf("[VERBOSE] skipping %s: %v", doc.Name, err)
		}
		return nil, &types.SkippedDocument{
			Name:   doc.Name,
			Stage:  types.StageExtraction,
			Reason: err.Error(),
		}
	}

	cleaned, err := p.normalizer.Normalize(ctx, rawText)
	if err != nil {
		// The candidate stays in the run: the marker text is embedded and
		// ranked so the recruiter sees the failure in context.
		if p.verbose {
			log.Printf("[VERBOSE] normalization failed for %s: %v", doc.Name, err)
		}
		return &types.NormalizedCandidate{
			Name:                doc.Name,
			Text:                normalize.MarkerText(err),
			NormalizationFailed: true,
		}, nil
	}

	return &types.NormalizedCandidate{Name: doc.Name, Text: cleaned}, nil
}
