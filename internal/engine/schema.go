package engine

import (
	"fmt"

	"pulseform/internal/model"
)

// SchemaErrorKind classifies an authoring-time schema violation
type SchemaErrorKind string

const (
	SchemaDuplicateID        SchemaErrorKind = "duplicate_id"
	SchemaBadQuestionType    SchemaErrorKind = "bad_question_type"
	SchemaMissingOptions     SchemaErrorKind = "missing_options"
	SchemaUnknownDependency  SchemaErrorKind = "unknown_dependency"
	SchemaForwardDependency  SchemaErrorKind = "forward_dependency"
	SchemaBadDependencyType  SchemaErrorKind = "bad_dependency_type"
	SchemaUnknownOptionValue SchemaErrorKind = "unknown_option_value"
)

// SchemaError is a single schema violation tied to a question
type SchemaError struct {
	QuestionID string          `json:"questionId"`
	Kind       SchemaErrorKind `json:"kind"`
	Detail     string          `json:"detail"`
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("question %q: %s: %s", e.QuestionID, e.Kind, e.Detail)
}

// InvalidSchemaError aggregates every violation found in a survey
type InvalidSchemaError struct {
	Errors []SchemaError
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("survey schema has %d violation(s)", len(e.Errors))
}

// ValidSchema is a survey that passed ValidateSchema, together with its
// derived dependency graph and position index. Immutable once built; a
// survey that fails validation never becomes a ValidSchema.
type ValidSchema struct {
	survey *model.Survey
	order  map[string]int
	byID   map[string]*model.Question
	graph  map[string][]string
}

// ValidateSchema checks every structural invariant of a survey's visibility
// conditions and returns all violations found, not just the first, so
// authoring tools can report them together. Checks per question: unique id,
// known type, non-empty options for choice types, and for conditioned
// questions: the dependsOn target exists, appears strictly earlier, is
// single_choice or dropdown, and declares equalsValue among its options.
// Rating questions with MaxRating unset are normalized to DefaultMaxRating.
func ValidateSchema(survey *model.Survey) (*ValidSchema, []SchemaError) {
	var errs []SchemaError

	order := make(map[string]int, len(survey.Questions))
	byID := make(map[string]*model.Question, len(survey.Questions))
	for i := range survey.Questions {
		q := &survey.Questions[i]
		if _, dup := order[q.ID]; dup {
			errs = append(errs, SchemaError{q.ID, SchemaDuplicateID, "question id is already used"})
			continue
		}
		order[q.ID] = i
		byID[q.ID] = q
	}

	for i := range survey.Questions {
		q := &survey.Questions[i]
		if !q.Type.IsValid() {
			errs = append(errs, SchemaError{q.ID, SchemaBadQuestionType, fmt.Sprintf("unsupported question type %q", q.Type)})
		}
		if q.Type.IsChoice() && len(q.Options) == 0 {
			errs = append(errs, SchemaError{q.ID, SchemaMissingOptions, "choice question needs at least one option"})
		}
		if q.Type == model.QuestionRating && q.MaxRating == 0 {
			q.MaxRating = model.DefaultMaxRating
		}
		if q.Visibility == nil {
			continue
		}

		cond := q.Visibility
		targetPos, ok := order[cond.DependsOn]
		if !ok {
			errs = append(errs, SchemaError{q.ID, SchemaUnknownDependency, fmt.Sprintf("dependsOn references unknown question %q", cond.DependsOn)})
			continue
		}
		if targetPos >= order[q.ID] {
			errs = append(errs, SchemaError{q.ID, SchemaForwardDependency, fmt.Sprintf("dependsOn %q must appear strictly earlier", cond.DependsOn)})
			continue
		}
		target := byID[cond.DependsOn]
		if !target.Type.IsDiscrete() {
			errs = append(errs, SchemaError{q.ID, SchemaBadDependencyType, fmt.Sprintf("dependsOn target %q is %s; only single_choice or dropdown can be a condition target", target.ID, target.Type)})
			continue
		}
		if !containsOption(target.Options, cond.EqualsValue) {
			errs = append(errs, SchemaError{q.ID, SchemaUnknownOptionValue, fmt.Sprintf("equalsValue %q is not an option of %q", cond.EqualsValue, target.ID)})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ValidSchema{
		survey: survey,
		order:  order,
		byID:   byID,
		graph:  BuildGraph(survey),
	}, nil
}

// Survey returns the underlying survey. Callers must treat it as read-only.
func (s *ValidSchema) Survey() *model.Survey {
	return s.survey
}

// Questions returns the ordered question sequence
func (s *ValidSchema) Questions() []model.Question {
	return s.survey.Questions
}

// Question looks up a question by id
func (s *ValidSchema) Question(id string) (*model.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// Graph returns the forward dependency edges (see BuildGraph)
func (s *ValidSchema) Graph() map[string][]string {
	return s.graph
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
