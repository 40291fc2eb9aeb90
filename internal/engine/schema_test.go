package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseform/internal/model"
)

func yesNoSurvey() *model.Survey {
	return &model.Survey{
		ID:    "s1",
		Title: "Feedback",
		Questions: []model.Question{
			{
				ID:       "q1",
				Type:     model.QuestionSingleChoice,
				Title:    "Did you attend?",
				Required: true,
				Options:  []string{"Yes", "No"},
			},
			{
				ID:       "q2",
				Type:     model.QuestionShortText,
				Title:    "What did you enjoy most?",
				Required: true,
				Visibility: &model.VisibilityCondition{
					DependsOn:   "q1",
					EqualsValue: "Yes",
				},
			},
		},
	}
}

func mustSchema(t *testing.T, survey *model.Survey) *ValidSchema {
	t.Helper()
	schema, errs := ValidateSchema(survey)
	require.Empty(t, errs)
	require.NotNil(t, schema)
	return schema
}

func TestValidateSchemaAccepts(t *testing.T) {
	schema := mustSchema(t, yesNoSurvey())

	q, ok := schema.Question("q2")
	require.True(t, ok)
	assert.Equal(t, model.QuestionShortText, q.Type)
	assert.Len(t, schema.Questions(), 2)
}

func TestValidateSchemaRejections(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.Question
		wantKind  SchemaErrorKind
		wantID    string
	}{
		{
			name: "unknown dependency",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionShortText, Title: "a"},
				{ID: "q2", Type: model.QuestionShortText, Title: "b",
					Visibility: &model.VisibilityCondition{DependsOn: "nope", EqualsValue: "Yes"}},
			},
			wantKind: SchemaUnknownDependency,
			wantID:   "q2",
		},
		{
			name: "forward dependency",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionShortText, Title: "a",
					Visibility: &model.VisibilityCondition{DependsOn: "q2", EqualsValue: "Yes"}},
				{ID: "q2", Type: model.QuestionSingleChoice, Title: "b", Options: []string{"Yes", "No"}},
			},
			wantKind: SchemaForwardDependency,
			wantID:   "q1",
		},
		{
			name: "self reference",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionSingleChoice, Title: "a", Options: []string{"Yes"},
					Visibility: &model.VisibilityCondition{DependsOn: "q1", EqualsValue: "Yes"}},
			},
			wantKind: SchemaForwardDependency,
			wantID:   "q1",
		},
		{
			name: "non-discrete dependency target",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionMultipleChoice, Title: "a", Options: []string{"A", "B"}},
				{ID: "q2", Type: model.QuestionShortText, Title: "b",
					Visibility: &model.VisibilityCondition{DependsOn: "q1", EqualsValue: "A"}},
			},
			wantKind: SchemaBadDependencyType,
			wantID:   "q2",
		},
		{
			name: "equalsValue not among target options",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionDropdown, Title: "a", Options: []string{"Red", "Blue"}},
				{ID: "q2", Type: model.QuestionShortText, Title: "b",
					Visibility: &model.VisibilityCondition{DependsOn: "q1", EqualsValue: "Green"}},
			},
			wantKind: SchemaUnknownOptionValue,
			wantID:   "q2",
		},
		{
			name: "duplicate id",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionShortText, Title: "a"},
				{ID: "q1", Type: model.QuestionShortText, Title: "b"},
			},
			wantKind: SchemaDuplicateID,
			wantID:   "q1",
		},
		{
			name: "choice question without options",
			questions: []model.Question{
				{ID: "q1", Type: model.QuestionSingleChoice, Title: "a"},
			},
			wantKind: SchemaMissingOptions,
			wantID:   "q1",
		},
		{
			name: "unsupported type",
			questions: []model.Question{
				{ID: "q1", Type: QuestionTypeBogus, Title: "a"},
			},
			wantKind: SchemaBadQuestionType,
			wantID:   "q1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, errs := ValidateSchema(&model.Survey{ID: "s1", Questions: tt.questions})
			require.Nil(t, schema)
			require.NotEmpty(t, errs)

			found := false
			for _, e := range errs {
				if e.Kind == tt.wantKind && e.QuestionID == tt.wantID {
					found = true
				}
			}
			assert.True(t, found, "expected %s on %s, got %v", tt.wantKind, tt.wantID, errs)
		})
	}
}

const QuestionTypeBogus = model.QuestionType("hologram")

func TestValidateSchemaAppliesRatingDefault(t *testing.T) {
	survey := &model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionRating, Title: "Overall?"},
			{ID: "q2", Type: model.QuestionRating, Title: "Support?", MaxRating: 10},
		},
	}

	schema := mustSchema(t, survey)

	q1, ok := schema.Question("q1")
	require.True(t, ok)
	assert.Equal(t, model.DefaultMaxRating, q1.MaxRating)

	// an explicit scale is left alone
	q2, ok := schema.Question("q2")
	require.True(t, ok)
	assert.Equal(t, 10, q2.MaxRating)
}

func TestValidateSchemaReportsAllViolations(t *testing.T) {
	survey := &model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionDropdown, Title: "a"}, // missing options
			{ID: "q2", Type: model.QuestionShortText, Title: "b",
				Visibility: &model.VisibilityCondition{DependsOn: "missing", EqualsValue: "x"}},
			{ID: "q3", Type: model.QuestionShortText, Title: "c",
				Visibility: &model.VisibilityCondition{DependsOn: "q1", EqualsValue: "x"}},
		},
	}

	schema, errs := ValidateSchema(survey)
	require.Nil(t, schema)
	// q1 has no options, q2 points nowhere, q3's value is not a q1 option
	assert.Len(t, errs, 3)
}

func TestInvalidSchemaNeverReachesEvaluation(t *testing.T) {
	survey := yesNoSurvey()
	survey.Questions[1].Visibility.DependsOn = "q9"

	schema, errs := ValidateSchema(survey)
	assert.Nil(t, schema)
	assert.NotEmpty(t, errs)
}
