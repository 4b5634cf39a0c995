package ranking

import (
	"fmt"
	"strings"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
)

type Explanations struct {
	SkillMatches        []string
	ExperienceRelevance []string
}

// Explain derives the human-readable justification attached to a match.
// Both skill sets are enriched here, unlike SkillMatchScore where only the
// job side is. Experience entries keep the candidate's original order and
// are never deduplicated.
func Explain(graph *Graph, j job.Job, c candidate.Candidate) Explanations {
	jobEnriched := graph.Enrich(j.RequiredSkills)
	jobSet := lowerSet(jobEnriched)

	matches := make([]string, 0)
	for _, skill := range graph.Enrich(c.Skills) {
		if _, ok := jobSet[strings.ToLower(skill)]; ok {
			matches = append(matches, skill)
		}
	}

	relevance := make([]string, 0)
	for _, exp := range c.Experiences {
		role := strings.ToLower(exp.Role)
		for _, skill := range jobEnriched {
			if strings.Contains(role, strings.ToLower(skill)) {
				relevance = append(relevance, fmt.Sprintf("Relevant experience: %s at %s", exp.Role, exp.Company))
				break
			}
		}
	}

	return Explanations{SkillMatches: matches, ExperienceRelevance: relevance}
}
