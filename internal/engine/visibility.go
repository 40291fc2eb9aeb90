package engine

import "pulseform/internal/model"

// VisibleSet computes the set of currently-visible question ids as a pure
// function of the schema and the current answers. A question with no
// condition is always visible; a conditioned question is visible iff its
// target is already in the visible set AND the stored answer for the target
// equals the condition value. Conditions only reference earlier questions,
// so one linear pass in schema order resolves transitive hiding with no
// fixed-point iteration.
func (s *ValidSchema) VisibleSet(answers model.AnswerSet) map[string]bool {
	visible := make(map[string]bool, len(s.survey.Questions))
	for i := range s.survey.Questions {
		q := &s.survey.Questions[i]
		if q.Visibility == nil {
			visible[q.ID] = true
			continue
		}
		cond := q.Visibility
		if !visible[cond.DependsOn] {
			continue
		}
		ans, ok := answers[cond.DependsOn]
		if !ok {
			continue
		}
		if ans.Discrete() == cond.EqualsValue {
			visible[q.ID] = true
		}
	}
	return visible
}

// VisibleQuestions returns the currently-visible questions in schema order
func (s *ValidSchema) VisibleQuestions(answers model.AnswerSet) []model.Question {
	visible := s.VisibleSet(answers)
	out := make([]model.Question, 0, len(visible))
	for _, q := range s.survey.Questions {
		if visible[q.ID] {
			out = append(out, q)
		}
	}
	return out
}
