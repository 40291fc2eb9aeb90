package engine

import "pulseform/internal/model"

// BuildGraph maps each question id to the ids of the questions whose
// visibility depends on it. Dependents are listed in schema order so
// evaluation stays deterministic. Every edge points strictly backward in
// sequence order (enforced by ValidateSchema), so the graph is acyclic by
// construction. Built once per schema and treated as immutable.
func BuildGraph(survey *model.Survey) map[string][]string {
	graph := make(map[string][]string, len(survey.Questions))
	for _, q := range survey.Questions {
		graph[q.ID] = nil
	}
	for _, q := range survey.Questions {
		if q.Visibility == nil {
			continue
		}
		target := q.Visibility.DependsOn
		graph[target] = append(graph[target], q.ID)
	}
	return graph
}
