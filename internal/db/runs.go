package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmorrow/compliant-ats/internal/types"
)

// RunSummary is a lightweight listing row for past screening runs.
type RunSummary struct {
	ID             uuid.UUID `json:"id"`
	JobDescription string    `json:"job_description"`
	CompletedAt    time.Time `json:"completed_at"`
	CandidateCount int       `json:"candidate_count"`
}

// SaveScreeningRun persists a completed run with its rankings and skips.
func (db *DB) SaveScreeningRun(ctx context.Context, result *types.ScreeningResult) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO screening_runs (id, job_description, completed_at)
		 VALUES ($1, $2, $3)`,
		result.RunID, result.JobDescription, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for i, rc := range result.Ranked {
		_, err = tx.Exec(ctx,
			`INSERT INTO ranked_candidates (run_id, name, score, rank, normalization_failed)
			 VALUES ($1, $2, $3, $4, $5)`,
			result.RunID, rc.Name, rc.Score, i+1, rc.NormalizationFailed,
		)
		if err != nil {
			return fmt.Errorf("failed to save candidate %s: %w", rc.Name, err)
		}
	}

	for _, sd := range result.Skipped {
		_, err = tx.Exec(ctx,
			`INSERT INTO skipped_documents (run_id, name, stage, reason)
			 VALUES ($1, $2, $3, $4)`,
			result.RunID, sd.Name, sd.Stage, sd.Reason,
		)
		if err != nil {
			return fmt.Errorf("failed to save skipped document %s: %w", sd.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// SaveFeedbackDraft stores a generated rejection draft, optionally linked to a run.
func (db *DB) SaveFeedbackDraft(ctx context.Context, runID *uuid.UUID, candidateName string, draft *types.FeedbackDraft) error {
	violations := draft.Violations
	if violations == nil {
		violations = []string{}
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO feedback_drafts (run_id, candidate_name, body, violations)
		 VALUES ($1, $2, $3, $4)`,
		runID, candidateName, draft.Body, violations,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback draft: %w", err)
	}
	return nil
}

// ListRuns returns recent screening runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.job_description, r.completed_at,
		        (SELECT COUNT(*) FROM ranked_candidates c WHERE c.run_id = r.id)
		 FROM screening_runs r
		 ORDER BY r.completed_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.JobDescription, &r.CompletedAt, &r.CandidateCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a full screening result by ID.
// Returns nil with no error when the run does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*types.ScreeningResult, error) {
	var result types.ScreeningResult
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_description, completed_at FROM screening_runs WHERE id = $1`,
		runID,
	).Scan(&result.RunID, &result.JobDescription, &result.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT name, score, normalization_failed
		 FROM ranked_candidates WHERE run_id = $1 ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc types.RankedCandidate
		if err := rows.Scan(&rc.Name, &rc.Score, &rc.NormalizationFailed); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		result.Ranked = append(result.Ranked, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skipRows, err := db.pool.Query(ctx,
		`SELECT name, stage, reason FROM skipped_documents WHERE run_id = $1 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get skipped documents: %w", err)
	}
	defer skipRows.Close()

	for skipRows.Next() {
		var sd types.SkippedDocument
		if err := skipRows.Scan(&sd.Name, &sd.Stage, &sd.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan skipped document: %w", err)
		}
		result.Skipped = append(result.Skipped, sd)
	}
	return &result, skipRows.Err()
}
