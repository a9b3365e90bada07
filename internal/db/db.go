// Package db provides PostgreSQL storage for screening run history.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the run-history tables if they do not already exist.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS screening_runs (
			id UUID PRIMARY KEY,
			job_description TEXT NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ranked_candidates (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES screening_runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			rank INT NOT NULL,
			normalization_failed BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (run_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS skipped_documents (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES screening_runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			stage TEXT NOT NULL,
			reason TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS feedback_drafts (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID REFERENCES screening_runs(id) ON DELETE SET NULL,
			candidate_name TEXT NOT NULL,
			body TEXT NOT NULL,
			violations TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
