package ranking

import (
	"context"
	"errors"
	"math"
	"testing"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
)

type mockStore struct {
	rows []FilteredCandidate
	err  error
}

func (m *mockStore) FilterBySkills(context.Context, []string) ([]FilteredCandidate, error) {
	return m.rows, m.err
}

type mockIndex struct {
	hits  []Hit
	err   error
	calls int

	lastIDs []string
	lastK   int
}

func (m *mockIndex) Search(_ context.Context, _ []float32, allowedIDs []string, k int) ([]Hit, error) {
	m.calls++
	m.lastIDs = allowedIDs
	m.lastK = k
	return m.hits, m.err
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(context.Context, string) ([]float32, error) {
	m.calls++
	return m.vec, m.err
}

func row(id, email string, skills ...string) FilteredCandidate {
	return FilteredCandidate{
		Candidate: candidate.Candidate{FirstName: "Test", LastName: id, Email: email, Skills: skills},
		VectorID:  id,
	}
}

func TestEngine_Rank_EndToEnd(t *testing.T) {
	store := &mockStore{rows: []FilteredCandidate{row("1", "a@example.com", "Python", "Flask")}}
	index := &mockIndex{hits: []Hit{{ID: "1", Similarity: 0.8}}}
	emb := &mockEmbedder{vec: []float32{0.1, 0.2}}

	e := NewEngine(store, index, emb, DefaultGraph(), Options{}, nil)
	res, err := e.Rank(context.Background(), job.Job{Title: "Dev", RequiredSkills: []string{"Python"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
	// Enriched job set has 5 skills; the candidate covers 2 of them.
	if math.Abs(res[0].SkillMatchScore-0.4) > 1e-9 {
		t.Fatalf("skill score = %v, want 0.4", res[0].SkillMatchScore)
	}
	want := 0.4*skillWeight + 0.8*semanticWeight
	if math.Abs(res[0].TotalScore-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", res[0].TotalScore, want)
	}
	if index.lastK != DefaultSearchLimit {
		t.Fatalf("search k = %d, want %d", index.lastK, DefaultSearchLimit)
	}
}

func TestEngine_Rank_NoSurvivorsSkipsCollaborators(t *testing.T) {
	store := &mockStore{rows: []FilteredCandidate{row("1", "a@example.com", "Mathematics")}}
	index := &mockIndex{}
	emb := &mockEmbedder{}

	e := NewEngine(store, index, emb, DefaultGraph(), Options{}, nil)
	res, err := e.Rank(context.Background(), job.Job{RequiredSkills: []string{"Java"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected empty result, got %v", res)
	}
	if emb.calls != 0 {
		t.Fatalf("embedder must not be called, got %d calls", emb.calls)
	}
	if index.calls != 0 {
		t.Fatalf("vector index must not be called, got %d calls", index.calls)
	}
}

func TestEngine_Rank_ThresholdBoundary(t *testing.T) {
	// Job enriched set is 10 skills wide so scores land exactly on 0.1.
	g := NewGraph(map[string][]string{
		"python": {"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"},
	})
	store := &mockStore{rows: []FilteredCandidate{
		row("kept", "kept@example.com", "s1"),
		row("dropped", "dropped@example.com", "other"),
	}}
	index := &mockIndex{hits: []Hit{{ID: "kept", Similarity: 0.5}}}
	emb := &mockEmbedder{vec: []float32{1}}

	e := NewEngine(store, index, emb, g, Options{}, nil)
	res, err := e.Rank(context.Background(), job.Job{RequiredSkills: []string{"Python"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 1 || res[0].Candidate.Email != "kept@example.com" {
		t.Fatalf("candidate at exactly 0.1 must be kept, got %v", res)
	}
	if len(index.lastIDs) != 1 || index.lastIDs[0] != "kept" {
		t.Fatalf("only surviving ids may reach the index, got %v", index.lastIDs)
	}
}

func TestEngine_Rank_ExplicitZeroThreshold(t *testing.T) {
	store := &mockStore{rows: []FilteredCandidate{row("1", "a@example.com", "Mathematics")}}
	index := &mockIndex{hits: []Hit{{ID: "1", Similarity: 0.7}}}
	emb := &mockEmbedder{vec: []float32{1}}

	zero := 0.0
	e := NewEngine(store, index, emb, DefaultGraph(), Options{MinSkillMatch: &zero}, nil)
	res, err := e.Rank(context.Background(), job.Job{RequiredSkills: []string{"Java"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("zero threshold must admit a zero-score candidate, got %d results", len(res))
	}
	if res[0].SkillMatchScore != 0 {
		t.Fatalf("skill score = %v, want 0", res[0].SkillMatchScore)
	}
	want := 0.7 * semanticWeight
	if math.Abs(res[0].TotalScore-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", res[0].TotalScore, want)
	}
}

func TestEngine_Rank_MissingSemanticScoreExcluded(t *testing.T) {
	store := &mockStore{rows: []FilteredCandidate{
		row("1", "a@example.com", "Python"),
		row("2", "b@example.com", "Python"),
	}}
	index := &mockIndex{hits: []Hit{{ID: "1", Similarity: 0.9}}}
	emb := &mockEmbedder{vec: []float32{1}}

	e := NewEngine(store, index, emb, DefaultGraph(), Options{}, nil)
	res, err := e.Rank(context.Background(), job.Job{RequiredSkills: []string{"Python"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("candidate without semantic score must be excluded, got %d results", len(res))
	}
	if res[0].Candidate.Email != "a@example.com" {
		t.Fatalf("wrong candidate retained: %v", res[0].Candidate.Email)
	}
}

func TestEngine_Rank_SortedDescendingAndDeterministic(t *testing.T) {
	store := &mockStore{rows: []FilteredCandidate{
		row("low", "low@example.com", "Python"),
		row("tie-a", "tie-a@example.com", "Python"),
		row("tie-b", "tie-b@example.com", "Python"),
		row("high", "high@example.com", "Python"),
	}}
	index := &mockIndex{hits: []Hit{
		{ID: "low", Similarity: 0.1},
		{ID: "tie-a", Similarity: 0.5},
		{ID: "tie-b", Similarity: 0.5},
		{ID: "high", Similarity: 0.9},
	}}
	emb := &mockEmbedder{vec: []float32{1}}

	e := NewEngine(store, index, emb, DefaultGraph(), Options{}, nil)

	var first []string
	for run := 0; run < 3; run++ {
		res, err := e.Rank(context.Background(), job.Job{RequiredSkills: []string{"Python"}})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		order := make([]string, 0, len(res))
		for _, r := range res {
			order = append(order, r.Candidate.Email)
		}
		for i := 1; i < len(res); i++ {
			if res[i].TotalScore > res[i-1].TotalScore {
				t.Fatalf("not sorted descending: %v", order)
			}
		}
		if order[1] != "tie-a@example.com" || order[2] != "tie-b@example.com" {
			t.Fatalf("ties must keep store row order, got %v", order)
		}
		if first == nil {
			first = order
			continue
		}
		for i := range order {
			if order[i] != first[i] {
				t.Fatalf("order changed across runs: %v vs %v", first, order)
			}
		}
	}
}

func TestEngine_Rank_CollaboratorErrors(t *testing.T) {
	j := job.Job{RequiredSkills: []string{"Python"}}
	boom := errors.New("boom")

	e := NewEngine(&mockStore{err: boom}, &mockIndex{}, &mockEmbedder{}, DefaultGraph(), Options{}, nil)
	if _, err := e.Rank(context.Background(), j); !errors.Is(err, boom) {
		t.Fatalf("store error must surface, got %v", err)
	}

	store := &mockStore{rows: []FilteredCandidate{row("1", "a@example.com", "Python")}}
	e = NewEngine(store, &mockIndex{}, &mockEmbedder{err: boom}, DefaultGraph(), Options{}, nil)
	if _, err := e.Rank(context.Background(), j); !errors.Is(err, boom) {
		t.Fatalf("embedder error must surface, got %v", err)
	}

	e = NewEngine(store, &mockIndex{err: boom}, &mockEmbedder{vec: []float32{1}}, DefaultGraph(), Options{}, nil)
	if _, err := e.Rank(context.Background(), j); !errors.Is(err, boom) {
		t.Fatalf("index error must surface, got %v", err)
	}
}

func TestEngine_Rank_EmptyRequiredSkills(t *testing.T) {
	store := &mockStore{rows: []FilteredCandidate{row("1", "a@example.com", "Python")}}
	e := NewEngine(store, &mockIndex{}, &mockEmbedder{}, DefaultGraph(), Options{}, nil)

	_, err := e.Rank(context.Background(), job.Job{})
	if !errors.Is(err, ErrEmptySkillProfile) {
		t.Fatalf("expected ErrEmptySkillProfile, got %v", err)
	}
}
