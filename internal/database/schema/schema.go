package schema

import (
	"context"
	"fmt"

	"talent-match/internal/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		address TEXT,
		skills JSONB NOT NULL DEFAULT '[]',
		max_education_level TEXT,
		experiences JSONB NOT NULL DEFAULT '[]',
		education JSONB NOT NULL DEFAULT '[]',
		vector_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS job_matches (
		id UUID PRIMARY KEY,
		request_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		execution_time DOUBLE PRECISION,
		job_title TEXT NOT NULL,
		job_description TEXT,
		budget_min DOUBLE PRECISION,
		budget_max DOUBLE PRECISION,
		budget_currency TEXT,
		required_skills JSONB NOT NULL DEFAULT '[]',
		candidate_name TEXT NOT NULL,
		candidate_email TEXT NOT NULL,
		total_score DOUBLE PRECISION NOT NULL,
		skill_match_score DOUBLE PRECISION NOT NULL,
		semantic_score DOUBLE PRECISION NOT NULL,
		skill_matches JSONB NOT NULL DEFAULT '[]',
		experience_relevance JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_matches_request_id ON job_matches (request_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Ensure creates the tables the service reads and writes. Statements are
// idempotent, so repeated startups are safe.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
