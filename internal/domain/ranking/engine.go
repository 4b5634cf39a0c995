package ranking

import (
	"context"
	"fmt"
	"log"
	"sort"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
)

const (
	skillWeight    = 0.4
	semanticWeight = 0.6

	// DefaultMinSkillMatch drops candidates whose skill score falls below
	// it; a score exactly at the threshold is retained.
	DefaultMinSkillMatch = 0.1

	// DefaultSearchLimit caps a single batched vector-index query.
	DefaultSearchLimit = 100
)

// FilteredCandidate is a store row that passed the coarse skill filter,
// joined with its vector-index identifier.
type FilteredCandidate struct {
	Candidate candidate.Candidate
	VectorID  string
}

// Hit is one vector-index result. Similarity is always higher-is-better;
// adapters over distance-metric backends normalize before returning.
type Hit struct {
	ID         string
	Similarity float64
}

// CandidateStore returns candidates whose stored skills intersect the given
// set. This is a cheap admission predicate, not a score.
type CandidateStore interface {
	FilterBySkills(ctx context.Context, skills []string) ([]FilteredCandidate, error)
}

// VectorIndex answers nearest-neighbour queries restricted to an allowed id
// subset. It may return fewer than k hits.
type VectorIndex interface {
	Search(ctx context.Context, embedding []float32, allowedIDs []string, k int) ([]Hit, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type MatchResult struct {
	Candidate       candidate.Candidate
	SkillMatchScore float64
	SemanticScore   float64
	TotalScore      float64
	Explanations    Explanations
}

type Options struct {
	// MinSkillMatch overrides the admission threshold. Nil keeps the
	// default; an explicit zero is honored and admits every filtered
	// candidate.
	MinSkillMatch *float64
	SearchLimit   int
}

// Engine runs the hybrid ranking pipeline. It holds long-lived collaborator
// handles injected once at startup and keeps no per-call state, so a single
// instance serves concurrent requests.
type Engine struct {
	store    CandidateStore
	index    VectorIndex
	embedder Embedder
	graph    *Graph

	minSkillMatch float64
	searchLimit   int
	logger        *log.Logger
}

func NewEngine(store CandidateStore, index VectorIndex, embedder Embedder, graph *Graph, opts Options, logger *log.Logger) *Engine {
	if graph == nil {
		graph = DefaultGraph()
	}
	minSkillMatch := DefaultMinSkillMatch
	if opts.MinSkillMatch != nil && *opts.MinSkillMatch >= 0 {
		minSkillMatch = *opts.MinSkillMatch
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:         store,
		index:         index,
		embedder:      embedder,
		graph:         graph,
		minSkillMatch: minSkillMatch,
		searchLimit:   opts.SearchLimit,
		logger:        logger,
	}
}

type survivor struct {
	row        FilteredCandidate
	skillScore float64
}

// Rank runs filter -> skill scoring -> batched semantic lookup -> fusion ->
// sort for one job posting. Both collaborator round-trips are batched; the
// vector index is never queried per candidate, and not at all when no
// candidate survives the skill threshold.
func (e *Engine) Rank(ctx context.Context, j job.Job) ([]MatchResult, error) {
	rows, err := e.store.FilterBySkills(ctx, j.RequiredSkills)
	if err != nil {
		return nil, fmt.Errorf("filter candidates: %w", err)
	}

	survivors := make([]survivor, 0, len(rows))
	for _, row := range rows {
		score, err := SkillMatchScore(e.graph, j.RequiredSkills, row.Candidate.Skills)
		if err != nil {
			return nil, err
		}
		if score >= e.minSkillMatch {
			survivors = append(survivors, survivor{row: row, skillScore: score})
		}
	}

	if len(survivors) == 0 {
		return []MatchResult{}, nil
	}

	embedding, err := e.embedder.Embed(ctx, j.Text())
	if err != nil {
		return nil, fmt.Errorf("embed job text: %w", err)
	}

	ids := make([]string, 0, len(survivors))
	for _, s := range survivors {
		ids = append(ids, s.row.VectorID)
	}

	hits, err := e.index.Search(ctx, embedding, ids, e.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	simByID := make(map[string]float64, len(hits))
	for _, h := range hits {
		simByID[h.ID] = h.Similarity
	}

	results := make([]MatchResult, 0, len(survivors))
	for _, s := range survivors {
		sim, ok := simByID[s.row.VectorID]
		if !ok {
			// No semantic score means no fused score; the candidate is
			// excluded rather than defaulted to zero.
			e.logger.Printf("[Ranking] candidate dropped, no semantic score | vector_id=%s email=%s", s.row.VectorID, s.row.Candidate.Email)
			continue
		}
		results = append(results, MatchResult{
			Candidate:       s.row.Candidate,
			SkillMatchScore: s.skillScore,
			SemanticScore:   sim,
			TotalScore:      s.skillScore*skillWeight + sim*semanticWeight,
			Explanations:    Explain(e.graph, j, s.row.Candidate),
		})
	}

	// Ties keep store row order, which makes repeated calls deterministic
	// for fixed collaborator responses.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	return results, nil
}
