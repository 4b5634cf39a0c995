package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Graph maps a canonical skill to the skills it implies. Lookups are
// case-insensitive; edges are one-directional: "python" implying "flask"
// does not make "flask" imply "python" unless configured separately.
type Graph struct {
	relations map[string][]string
}

func NewGraph(relations map[string][]string) *Graph {
	normalized := make(map[string][]string, len(relations))
	for skill, related := range relations {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		normalized[key] = append([]string(nil), related...)
	}
	return &Graph{relations: normalized}
}

// LoadGraph reads a JSON object of canonical skill -> related skills.
func LoadGraph(path string) (*Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill graph: %w", err)
	}
	var relations map[string][]string
	if err := json.Unmarshal(b, &relations); err != nil {
		return nil, fmt.Errorf("parse skill graph: %w", err)
	}
	return NewGraph(relations), nil
}

func DefaultGraph() *Graph {
	return NewGraph(map[string][]string{
		"python":     {"Flask", "Fastapi", "Pandas", "Numpy"},
		"pytorch":    {"Tensorflow", "Python", "Pandas"},
		"javascript": {"Nodejs", "React", "Vue", "Angular", "Typescript", "Express"},
		"java":       {"Spring", "Hibernate", "Junit", "Maven", "Gradle"},
	})
}

// Enrich expands a skill set one hop through the graph. Input skills always
// pass through; unknown skills add nothing. The result is deduplicated
// case-insensitively, keeping the first casing seen, and ordered
// deterministically: input skills first, then related skills in the order
// each input skill contributes them. Enrich is idempotent; the related
// skills of related skills are never followed.
func (g *Graph) Enrich(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))

	add := func(s string) {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	for _, s := range skills {
		add(s)
	}
	for _, s := range skills {
		for _, related := range g.relations[strings.ToLower(s)] {
			add(related)
		}
	}
	return out
}
