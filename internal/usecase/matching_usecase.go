package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"talent-match/internal/domain/job"
	"talent-match/internal/domain/ranking"
	"talent-match/internal/repository"
	"talent-match/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// auditLimit caps how many ranked candidates are persisted per request.
const auditLimit = 100

type MatchInput struct {
	Title          string
	Description    string
	RequiredSkills []string
	Budget         job.Budget
}

type MatchOutput struct {
	RequestID     uuid.UUID
	ExecutionTime time.Duration
	Results       []ranking.MatchResult
}

type Ranker interface {
	Rank(ctx context.Context, j job.Job) ([]ranking.MatchResult, error)
}

type MatchingUsecase interface {
	MatchCandidates(ctx context.Context, in MatchInput) (MatchOutput, error)
}

type Matching struct {
	engine  Ranker
	matches repository.MatchRepository
	logger  *log.Logger
}

func NewMatchingUsecase(engine Ranker, matches repository.MatchRepository, logger *log.Logger) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{engine: engine, matches: matches, logger: logger}
}

func (u *Matching) MatchCandidates(ctx context.Context, in MatchInput) (MatchOutput, error) {
	j, err := buildJob(in)
	if err != nil {
		return MatchOutput{}, err
	}

	requestID := uuid.New()
	start := time.Now()

	results, err := u.engine.Rank(ctx, j)
	if err != nil {
		return MatchOutput{}, err
	}
	elapsed := time.Since(start)

	// Audit rows are write-only analytics; losing them must not fail a
	// ranking that already succeeded.
	if u.matches != nil {
		audited := results
		if len(audited) > auditLimit {
			audited = audited[:auditLimit]
		}
		if err := u.matches.StoreBatch(ctx, requestID, elapsed, j, audited); err != nil {
			u.logger.Printf("[Matching] audit write failed | request_id=%s err=%v", requestID, err)
		}
	}

	topScore := 0.0
	if len(results) > 0 {
		topScore = results[0].TotalScore
	}
	ws.NotifyMatchCompleted(requestID.String(), j.Title, len(results), topScore)

	return MatchOutput{RequestID: requestID, ExecutionTime: elapsed, Results: results}, nil
}

// buildJob validates and normalizes the inbound posting before any
// collaborator is touched.
func buildJob(in MatchInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.Job{}, ErrInvalidInput
	}

	skills := make([]string, 0, len(in.RequiredSkills))
	for _, s := range in.RequiredSkills {
		s = strings.TrimSpace(s)
		if s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		return job.Job{}, ErrInvalidInput
	}

	return job.Job{
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		RequiredSkills: skills,
		Budget:         in.Budget,
	}, nil
}
