package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/ranking"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidCandidate = errors.New("invalid candidate profile")
	ErrEmailTaken       = repository.ErrEmailTaken
)

const dateLayout = "2006-01-02"

// educationLevels orders recognized degrees from lowest to highest.
var educationLevels = []string{"High School", "Bachelor", "Master", "PhD"}

type ExperienceInput struct {
	Company   string
	Role      string
	StartDate string
	EndDate   string
}

type EducationInput struct {
	Institution      string
	Degree           string
	YearOfGraduation int
}

type IngestInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	Skills      []string
	Experiences []ExperienceInput
	Education   []EducationInput
}

type VectorUpserter interface {
	Upsert(ctx context.Context, id string, embedding []float32) error
}

type IngestUsecase interface {
	AddCandidate(ctx context.Context, in IngestInput) (uuid.UUID, error)
}

// Ingest enriches an inbound profile, embeds it, and persists it to both
// the relational store and the vector index.
type Ingest struct {
	candidates repository.CandidateRepository
	index      VectorUpserter
	embedder   ranking.Embedder
	graph      *ranking.Graph
	logger     *log.Logger
	now        func() time.Time
}

func NewIngestUsecase(candidates repository.CandidateRepository, index VectorUpserter, embedder ranking.Embedder, graph *ranking.Graph, logger *log.Logger) *Ingest {
	if graph == nil {
		graph = ranking.DefaultGraph()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Ingest{
		candidates: candidates,
		index:      index,
		embedder:   embedder,
		graph:      graph,
		logger:     logger,
		now:        time.Now,
	}
}

func (u *Ingest) AddCandidate(ctx context.Context, in IngestInput) (uuid.UUID, error) {
	c, err := u.buildCandidate(in)
	if err != nil {
		return uuid.Nil, err
	}

	embedding, err := u.embedder.Embed(ctx, c.ProfileText())
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	rec := repository.CandidateRecord{
		ID:                id,
		Candidate:         c,
		Phone:             strings.TrimSpace(in.Phone),
		Address:           strings.TrimSpace(in.Address),
		MaxEducationLevel: maxEducationLevel(c.Education),
		VectorID:          id.String(),
	}
	// Vector first: an orphan embedding left by a failed Create is
	// unreferenced and harmless, while a committed row without an
	// embedding never surfaces in semantic results and its unique email
	// blocks every retry.
	if err := u.index.Upsert(ctx, rec.VectorID, embedding); err != nil {
		u.logger.Printf("[Ingest] vector upsert failed | candidate=%s err=%v", id, err)
		return uuid.Nil, err
	}

	if err := u.candidates.Create(ctx, rec); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (u *Ingest) buildCandidate(in IngestInput) (candidate.Candidate, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if first == "" || last == "" || email == "" || len(in.Skills) == 0 {
		return candidate.Candidate{}, ErrInvalidCandidate
	}

	experiences := make([]candidate.Experience, 0, len(in.Experiences))
	for _, exp := range in.Experiences {
		duration, err := u.durationYears(exp.StartDate, exp.EndDate)
		if err != nil {
			return candidate.Candidate{}, ErrInvalidCandidate
		}
		experiences = append(experiences, candidate.Experience{
			Company:       strings.TrimSpace(exp.Company),
			Role:          strings.TrimSpace(exp.Role),
			StartDate:     exp.StartDate,
			EndDate:       exp.EndDate,
			DurationYears: duration,
		})
	}

	education := make([]candidate.Education, 0, len(in.Education))
	for _, edu := range in.Education {
		education = append(education, candidate.Education{
			Institution:      strings.TrimSpace(edu.Institution),
			Degree:           strings.TrimSpace(edu.Degree),
			YearOfGraduation: edu.YearOfGraduation,
		})
	}

	return candidate.Candidate{
		FirstName: first,
		LastName:  last,
		Email:     email,
		// Profiles are stored pre-enriched so the coarse ranking filter
		// can match on related skills without graph lookups per query.
		Skills:      u.graph.Enrich(in.Skills),
		Experiences: experiences,
		Education:   education,
	}, nil
}

// durationYears computes the experience length in years, rounded to one
// decimal. An empty or "ongoing" end date counts up to now.
func (u *Ingest) durationYears(start, end string) (float64, error) {
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return 0, err
	}

	endDate := u.now()
	if e := strings.TrimSpace(end); e != "" && !strings.EqualFold(e, "ongoing") {
		endDate, err = time.Parse(dateLayout, e)
		if err != nil {
			return 0, err
		}
	}
	if endDate.Before(startDate) {
		return 0, errors.New("end date before start date")
	}

	years := endDate.Sub(startDate).Hours() / 24 / 365
	return math.Round(years*10) / 10, nil
}

func maxEducationLevel(education []candidate.Education) string {
	max := 0
	for _, edu := range education {
		for i, level := range educationLevels {
			if edu.Degree == level && i > max {
				max = i
			}
		}
	}
	return educationLevels[max]
}
