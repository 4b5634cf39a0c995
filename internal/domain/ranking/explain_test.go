package ranking

import (
	"strings"
	"testing"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
)

func TestExplain_SkillMatchesEnrichBothSides(t *testing.T) {
	g := DefaultGraph()

	j := job.Job{Title: "ML Engineer", RequiredSkills: []string{"Python"}}
	c := candidate.Candidate{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		// Pytorch enriches to Python on the candidate side, so it matches
		// the enriched job set even though 4.2 scoring would ignore it.
		Skills: []string{"Pytorch"},
	}

	ex := Explain(g, j, c)

	found := false
	for _, s := range ex.SkillMatches {
		if strings.EqualFold(s, "Python") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Python in skill matches, got %v", ex.SkillMatches)
	}
}

func TestExplain_ExperienceRelevance(t *testing.T) {
	g := DefaultGraph()

	j := job.Job{Title: "Backend", RequiredSkills: []string{"Python"}}
	c := candidate.Candidate{
		Skills: []string{"Python"},
		Experiences: []candidate.Experience{
			{Company: "Acme", Role: "Python Developer"},
			{Company: "Globex", Role: "Accountant"},
			{Company: "Initech", Role: "Flask Engineer"},
		},
	}

	ex := Explain(g, j, c)

	want := []string{
		"Relevant experience: Python Developer at Acme",
		"Relevant experience: Flask Engineer at Initech",
	}
	if len(ex.ExperienceRelevance) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), ex.ExperienceRelevance)
	}
	for i, w := range want {
		if ex.ExperienceRelevance[i] != w {
			t.Fatalf("entry %d = %q, want %q", i, ex.ExperienceRelevance[i], w)
		}
	}
}

func TestExplain_NoDedupAcrossExperiences(t *testing.T) {
	g := DefaultGraph()

	j := job.Job{RequiredSkills: []string{"Java"}}
	c := candidate.Candidate{
		Skills: []string{"Java"},
		Experiences: []candidate.Experience{
			{Company: "Acme", Role: "Java Developer"},
			{Company: "Acme", Role: "Java Developer"},
		},
	}

	ex := Explain(g, j, c)
	if len(ex.ExperienceRelevance) != 2 {
		t.Fatalf("duplicate qualifying experiences must both appear, got %v", ex.ExperienceRelevance)
	}
}

func TestExplain_EmptyInputs(t *testing.T) {
	g := DefaultGraph()

	ex := Explain(g, job.Job{}, candidate.Candidate{})
	if len(ex.SkillMatches) != 0 || len(ex.ExperienceRelevance) != 0 {
		t.Fatalf("empty inputs must yield empty explanations, got %+v", ex)
	}
}
