package ranking

import (
	"errors"
	"strings"
)

// ErrEmptySkillProfile reports a job whose enriched required-skill set is
// empty. That input should have been rejected upstream, so scoring refuses
// to guess a default.
var ErrEmptySkillProfile = errors.New("enriched required-skill set is empty")

// SkillMatchScore measures how much of the job's required-skill set a
// candidate covers, in [0,1]. Only the job side is enriched: candidate
// skills are compared exactly as stored. Explanations enrich both sides
// (see Explain); keeping the two policies separate is deliberate, since
// unifying them would change ranking outcomes.
func SkillMatchScore(graph *Graph, jobSkills, candidateSkills []string) (float64, error) {
	enriched := lowerSet(graph.Enrich(jobSkills))
	if len(enriched) == 0 {
		return 0, ErrEmptySkillProfile
	}

	matched := 0
	for skill := range lowerSet(candidateSkills) {
		if _, ok := enriched[skill]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(enriched)), nil
}

func lowerSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}
