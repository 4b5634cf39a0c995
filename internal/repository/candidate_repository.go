package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/ranking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrEmailTaken = errors.New("email already registered")

// CandidateRecord is a profile ready for persistence: skills already
// enriched, durations computed, vector id assigned.
type CandidateRecord struct {
	ID                uuid.UUID
	Candidate         candidate.Candidate
	Phone             string
	Address           string
	MaxEducationLevel string
	VectorID          string
}

type CandidateRepository interface {
	ranking.CandidateStore
	Create(ctx context.Context, rec CandidateRecord) error
}

type PostgresCandidateRepository struct {
	db     database.DB
	logger *log.Logger
}

func NewPostgresCandidateRepository(db database.DB, logger *log.Logger) *PostgresCandidateRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &PostgresCandidateRepository{db: db, logger: logger}
}

// FilterBySkills is the coarse admission filter: any stored skill matching
// any required skill, case-insensitively. Skill values travel as bind
// parameters, never concatenated into the statement. Row order (insertion
// order) is what makes downstream tie-breaking deterministic.
func (r *PostgresCandidateRepository) FilterBySkills(ctx context.Context, skills []string) ([]ranking.FilteredCandidate, error) {
	if len(skills) == 0 {
		return []ranking.FilteredCandidate{}, nil
	}

	conds := make([]string, 0, len(skills))
	args := make([]any, 0, len(skills))
	for i, skill := range skills {
		conds = append(conds, fmt.Sprintf("skills::text ILIKE $%d", i+1))
		args = append(args, `%"`+escapeLikePattern(skill)+`"%`)
	}

	query := `SELECT first_name, last_name, email, skills, experiences, education, vector_id
		 FROM candidates
		 WHERE ` + strings.Join(conds, " OR ") + `
		 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ranking.FilteredCandidate, 0)
	for rows.Next() {
		var (
			c        candidate.Candidate
			vectorID string
			skillsRaw, expRaw, eduRaw []byte
		)
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Email, &skillsRaw, &expRaw, &eduRaw, &vectorID); err != nil {
			return nil, err
		}

		fc, ok := r.decodeRow(c, skillsRaw, expRaw, eduRaw, vectorID)
		if !ok {
			continue
		}
		out = append(out, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// escapeLikePattern neutralizes ILIKE metacharacters inside a skill value
// so the admission predicate matches the skill literally instead of
// treating % and _ as wildcards.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// decodeRow applies the partial-data policy: a row missing name, email or a
// readable skill set is skipped without failing the batch; unreadable
// experiences or education degrade to empty slices.
func (r *PostgresCandidateRepository) decodeRow(c candidate.Candidate, skillsRaw, expRaw, eduRaw []byte, vectorID string) (ranking.FilteredCandidate, bool) {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.FirstName+c.LastName) == "" {
		r.logger.Printf("[CandidateRepo] row skipped, missing identity | email=%q", c.Email)
		return ranking.FilteredCandidate{}, false
	}
	if err := json.Unmarshal(skillsRaw, &c.Skills); err != nil || c.Skills == nil {
		r.logger.Printf("[CandidateRepo] row skipped, unreadable skills | email=%s err=%v", c.Email, err)
		return ranking.FilteredCandidate{}, false
	}

	if err := json.Unmarshal(expRaw, &experiencesJSON{out: &c.Experiences}); err != nil {
		c.Experiences = nil
	}
	if err := json.Unmarshal(eduRaw, &educationJSON{out: &c.Education}); err != nil {
		c.Education = nil
	}

	return ranking.FilteredCandidate{Candidate: c, VectorID: vectorID}, true
}

func (r *PostgresCandidateRepository) Create(ctx context.Context, rec CandidateRecord) error {
	skills, err := json.Marshal(rec.Candidate.Skills)
	if err != nil {
		return err
	}
	experiences, err := json.Marshal(experienceRows(rec.Candidate.Experiences))
	if err != nil {
		return err
	}
	education, err := json.Marshal(educationRows(rec.Candidate.Education))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO candidates (id, first_name, last_name, email, phone, address, skills, max_education_level, experiences, education, vector_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID,
		rec.Candidate.FirstName,
		rec.Candidate.LastName,
		strings.ToLower(strings.TrimSpace(rec.Candidate.Email)),
		rec.Phone,
		rec.Address,
		skills,
		rec.MaxEducationLevel,
		experiences,
		education,
		rec.VectorID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// JSON shapes for the candidates table sub-documents. Kept snake_case to
// stay readable from SQL and compatible with rows ingested by earlier
// versions of the service.

type experienceRow struct {
	Company       string  `json:"company"`
	Role          string  `json:"role"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date,omitempty"`
	DurationYears float64 `json:"duration_years"`
}

type educationRow struct {
	Institution      string `json:"institution"`
	Degree           string `json:"degree"`
	YearOfGraduation int    `json:"year_of_graduation"`
}

func experienceRows(in []candidate.Experience) []experienceRow {
	out := make([]experienceRow, 0, len(in))
	for _, e := range in {
		out = append(out, experienceRow(e))
	}
	return out
}

func educationRows(in []candidate.Education) []educationRow {
	out := make([]educationRow, 0, len(in))
	for _, e := range in {
		out = append(out, educationRow(e))
	}
	return out
}

type experiencesJSON struct {
	out *[]candidate.Experience
}

func (e *experiencesJSON) UnmarshalJSON(b []byte) error {
	var rows []experienceRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	exps := make([]candidate.Experience, 0, len(rows))
	for _, r := range rows {
		exps = append(exps, candidate.Experience(r))
	}
	*e.out = exps
	return nil
}

type educationJSON struct {
	out *[]candidate.Education
}

func (e *educationJSON) UnmarshalJSON(b []byte) error {
	var rows []educationRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	edus := make([]candidate.Education, 0, len(rows))
	for _, r := range rows {
		edus = append(edus, candidate.Education(r))
	}
	*e.out = edus
	return nil
}

var _ CandidateRepository = (*PostgresCandidateRepository)(nil)
