package repository

import (
	"context"
	"encoding/json"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/ranking"

	"github.com/google/uuid"
)

// MatchRepository is write-only from the ranking core's perspective: one
// audit row per ranked candidate per request, for later analysis.
type MatchRepository interface {
	StoreBatch(ctx context.Context, requestID uuid.UUID, executionTime time.Duration, j job.Job, results []ranking.MatchResult) error
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) StoreBatch(ctx context.Context, requestID uuid.UUID, executionTime time.Duration, j job.Job, results []ranking.MatchResult) error {
	if len(results) == 0 {
		return nil
	}

	requiredSkills, err := json.Marshal(j.RequiredSkills)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, res := range results {
		skillMatches, err := json.Marshal(res.Explanations.SkillMatches)
		if err != nil {
			return err
		}
		experienceRelevance, err := json.Marshal(res.Explanations.ExperienceRelevance)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_matches (
				id, request_id, execution_time,
				job_title, job_description, budget_min, budget_max, budget_currency, required_skills,
				candidate_name, candidate_email,
				total_score, skill_match_score, semantic_score,
				skill_matches, experience_relevance
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			uuid.New(),
			requestID,
			executionTime.Seconds(),
			j.Title,
			j.Description,
			j.Budget.Min,
			j.Budget.Max,
			j.Budget.Currency,
			requiredSkills,
			res.Candidate.FullName(),
			res.Candidate.Email,
			res.TotalScore,
			res.SkillMatchScore,
			res.SemanticScore,
			skillMatches,
			experienceRelevance,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

var _ MatchRepository = (*PostgresMatchRepository)(nil)
