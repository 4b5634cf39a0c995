package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/ranking"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubMatching struct {
	out usecase.MatchOutput
	err error
	in  usecase.MatchInput
}

func (s *stubMatching) MatchCandidates(ctx context.Context, in usecase.MatchInput) (usecase.MatchOutput, error) {
	s.in = in
	return s.out, s.err
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newMatchApp(uc usecase.MatchingUsecase) *fiber.App {
	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	NewMatchHandler(uc).RegisterRoutes(app)
	return app
}

func postJSON(app *fiber.App, path string, body any) (*envelope, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, err
	}
	return &env, resp.StatusCode, nil
}

func TestMatchCandidatesEndpoint(t *testing.T) {
	results := make([]ranking.MatchResult, 12)
	for i := range results {
		results[i] = ranking.MatchResult{
			Candidate: candidate.Candidate{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
			},
			SkillMatchScore: 0.456,
			SemanticScore:   0.789,
			TotalScore:      0.654,
		}
	}
	stub := &stubMatching{out: usecase.MatchOutput{RequestID: uuid.New(), Results: results}}
	app := newMatchApp(stub)

	env, status, err := postJSON(app, "/match-candidates", map[string]any{
		"job_title":       "Backend Engineer",
		"job_description": "Build APIs",
		"required_skills": []string{"Go", "Postgres"},
		"budget":          map[string]any{"min": 1000, "max": 2000, "currency": "USD"},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var out dto.MatchResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.TopCandidates) != responseLimit {
		t.Errorf("top candidates = %d, want %d", len(out.TopCandidates), responseLimit)
	}
	if out.TopCandidates[0].Score != 0.65 || out.TopCandidates[0].SkillMatchScore != 0.46 || out.TopCandidates[0].SemanticScore != 0.79 {
		t.Errorf("scores not rounded to two decimals: %+v", out.TopCandidates[0])
	}
	if out.TopCandidates[0].FullName != "Jane Doe" {
		t.Errorf("full name = %q", out.TopCandidates[0].FullName)
	}
	if stub.in.Budget.Currency != "USD" {
		t.Errorf("budget not forwarded: %+v", stub.in.Budget)
	}
}

func TestMatchCandidatesValidation(t *testing.T) {
	stub := &stubMatching{}
	app := newMatchApp(stub)

	_, status, err := postJSON(app, "/match-candidates", map[string]any{
		"job_title":       "Backend Engineer",
		"required_skills": []string{},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if stub.in.Title != "" {
		t.Error("usecase called despite failed validation")
	}
}

func TestMatchCandidatesScrubsInternalErrors(t *testing.T) {
	stub := &stubMatching{err: errors.New("redis: connection refused")}
	app := newMatchApp(stub)

	env, status, err := postJSON(app, "/match-candidates", map[string]any{
		"job_title":       "Backend Engineer",
		"required_skills": []string{"Go"},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if bytes.Contains([]byte(env.Message), []byte("redis")) {
		t.Errorf("internal detail leaked: %q", env.Message)
	}
}
