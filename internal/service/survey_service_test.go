package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseform/internal/engine"
	"pulseform/internal/model"
)

func validSurvey() *model.Survey {
	return &model.Survey{
		HostID: "host_test",
		Title:  "Onboarding check-in",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionSingleChoice, Required: true, Options: []string{"Yes", "No"}},
			{ID: "q2", Type: model.QuestionLongText,
				Visibility: &model.VisibilityCondition{DependsOn: "q1", EqualsValue: "No"}},
		},
	}
}

func TestCreateValidSurvey(t *testing.T) {
	repo := newFakeSurveyRepo()
	svc := NewSurveyService(repo)

	id, schemaErrs, err := svc.Create(context.Background(), validSurvey())
	require.NoError(t, err)
	assert.Empty(t, schemaErrs)
	assert.NotEmpty(t, id)

	stored, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Onboarding check-in", stored.Title)
}

func TestCreateRejectsInvalidSchema(t *testing.T) {
	repo := newFakeSurveyRepo()
	svc := NewSurveyService(repo)

	survey := validSurvey()
	survey.Questions[1].Visibility.EqualsValue = "Maybe"
	survey.Questions = append(survey.Questions, model.Question{ID: "q1", Type: model.QuestionShortText})

	id, schemaErrs, err := svc.Create(context.Background(), survey)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Len(t, schemaErrs, 2)

	kinds := make(map[engine.SchemaErrorKind]bool)
	for _, e := range schemaErrs {
		kinds[e.Kind] = true
	}
	assert.True(t, kinds[engine.SchemaUnknownOptionValue])
	assert.True(t, kinds[engine.SchemaDuplicateID])

	// nothing persisted
	assert.Empty(t, repo.surveys)
}

func TestUpdateRejectsInvalidSchema(t *testing.T) {
	repo := newFakeSurveyRepo()
	svc := NewSurveyService(repo)

	id, _, err := svc.Create(context.Background(), validSurvey())
	require.NoError(t, err)

	broken, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	broken.Questions[0].Options = nil

	// dropping the options breaks both q1 and the condition pointing at it
	schemaErrs, err := svc.Update(context.Background(), broken)
	require.NoError(t, err)
	require.Len(t, schemaErrs, 2)
	assert.Equal(t, engine.SchemaMissingOptions, schemaErrs[0].Kind)
	assert.Equal(t, engine.SchemaUnknownOptionValue, schemaErrs[1].Kind)
}

func TestValidateDraftDoesNotPersist(t *testing.T) {
	repo := newFakeSurveyRepo()
	svc := NewSurveyService(repo)

	assert.Empty(t, svc.ValidateDraft(validSurvey()))

	broken := validSurvey()
	broken.Questions[1].Visibility.DependsOn = "q99"
	errs := svc.ValidateDraft(broken)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.SchemaUnknownDependency, errs[0].Kind)

	assert.Empty(t, repo.surveys)
}
