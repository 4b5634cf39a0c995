package dto

import (
	"math"

	"talent-match/internal/domain/ranking"
)

type ExplanationsResponse struct {
	SkillMatches        []string `json:"skill_matches"`
	ExperienceRelevance []string `json:"experience_relevance"`
}

type RankedCandidateResponse struct {
	FullName        string               `json:"full_name"`
	Email           string               `json:"email"`
	Score           float64              `json:"score"`
	SkillMatchScore float64              `json:"skill_match_score"`
	SemanticScore   float64              `json:"semantic_score"`
	Explanations    ExplanationsResponse `json:"explanations"`
}

type MatchResponse struct {
	RequestID     string                    `json:"request_id"`
	ExecutionTime float64                   `json:"execution_time"`
	TopCandidates []RankedCandidateResponse `json:"top_candidates"`
}

// NewRankedCandidateResponse rounds scores to two decimals for display; the
// audit trail keeps full precision.
func NewRankedCandidateResponse(res ranking.MatchResult) RankedCandidateResponse {
	skillMatches := res.Explanations.SkillMatches
	if skillMatches == nil {
		skillMatches = []string{}
	}
	experienceRelevance := res.Explanations.ExperienceRelevance
	if experienceRelevance == nil {
		experienceRelevance = []string{}
	}

	return RankedCandidateResponse{
		FullName:        res.Candidate.FullName(),
		Email:           res.Candidate.Email,
		Score:           round2(res.TotalScore),
		SkillMatchScore: round2(res.SkillMatchScore),
		SemanticScore:   round2(res.SemanticScore),
		Explanations: ExplanationsResponse{
			SkillMatches:        skillMatches,
			ExperienceRelevance: experienceRelevance,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
