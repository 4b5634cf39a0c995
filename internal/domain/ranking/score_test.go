package ranking

import (
	"errors"
	"math"
	"testing"
)

func TestSkillMatchScore_SupersetScoresOne(t *testing.T) {
	g := DefaultGraph()

	// Enriched job set is {python, flask, fastapi, pandas, numpy}.
	score, err := SkillMatchScore(g,
		[]string{"Python"},
		[]string{"python", "FLASK", "fastapi", "Pandas", "numpy", "rust"},
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if score != 1.0 {
		t.Fatalf("superset candidate must score 1.0, got %v", score)
	}
}

func TestSkillMatchScore_PartialOverlap(t *testing.T) {
	g := DefaultGraph()

	// Candidate covers python and flask out of the five enriched skills.
	score, err := SkillMatchScore(g, []string{"Python"}, []string{"Python", "Flask"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(score-0.4) > 1e-9 {
		t.Fatalf("expected 2/5, got %v", score)
	}
}

func TestSkillMatchScore_NoCandidateEnrichment(t *testing.T) {
	g := DefaultGraph()

	// The candidate has Pytorch, which enriches to Python, but candidate
	// skills are compared as stored, so it must not count toward a job
	// requiring Python.
	score, err := SkillMatchScore(g, []string{"Python"}, []string{"Pytorch"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0, got %v", score)
	}
}

func TestSkillMatchScore_Disjoint(t *testing.T) {
	g := DefaultGraph()

	score, err := SkillMatchScore(g, []string{"Java"}, []string{"Mathematics"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0, got %v", score)
	}
}

func TestSkillMatchScore_Bounds(t *testing.T) {
	g := DefaultGraph()

	cases := [][2][]string{
		{{"Python"}, {"Python"}},
		{{"Python", "Java"}, {"Flask", "Spring", "Go"}},
		{{"Javascript"}, {}},
		{{"Cobol"}, {"Cobol"}},
	}
	for _, c := range cases {
		score, err := SkillMatchScore(g, c[0], c[1])
		if err != nil {
			t.Fatalf("unexpected err for %v: %v", c, err)
		}
		if score < 0 || score > 1 {
			t.Fatalf("score out of [0,1] for %v: %v", c, score)
		}
	}
}

func TestSkillMatchScore_EmptyJobSkills(t *testing.T) {
	g := DefaultGraph()

	_, err := SkillMatchScore(g, nil, []string{"Python"})
	if !errors.Is(err, ErrEmptySkillProfile) {
		t.Fatalf("expected ErrEmptySkillProfile, got %v", err)
	}
}
