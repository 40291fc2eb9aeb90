package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulseform/internal/model"
)

func choice(v string) model.AnswerValue {
	return model.AnswerValue{SelectedOption: v}
}

func text(v string) model.AnswerValue {
	return model.AnswerValue{Text: v}
}

func chainedSurvey() *model.Survey {
	return &model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionSingleChoice, Options: []string{"Yes", "No"}},
			{ID: "q2", Type: model.QuestionSingleChoice, Options: []string{"A", "B"},
				Visibility: &model.VisibilityCondition{DependsOn: "q1", EqualsValue: "Yes"}},
			{ID: "q3", Type: model.QuestionShortText,
				Visibility: &model.VisibilityCondition{DependsOn: "q2", EqualsValue: "A"}},
		},
	}
}

func TestVisibleSetUnconditionedAlwaysVisible(t *testing.T) {
	schema := mustSchema(t, yesNoSurvey())

	visible := schema.VisibleSet(model.AnswerSet{})
	assert.True(t, visible["q1"])
	assert.False(t, visible["q2"])
}

func TestVisibleSetConditionMatch(t *testing.T) {
	schema := mustSchema(t, yesNoSurvey())

	visible := schema.VisibleSet(model.AnswerSet{"q1": choice("Yes")})
	assert.True(t, visible["q1"])
	assert.True(t, visible["q2"])

	visible = schema.VisibleSet(model.AnswerSet{"q1": choice("No")})
	assert.True(t, visible["q1"])
	assert.False(t, visible["q2"])
}

// A question whose dependency target is hidden stays hidden no matter what
// value is stored for the target.
func TestVisibleSetTransitiveHiding(t *testing.T) {
	schema := mustSchema(t, chainedSurvey())

	// q2 was answered "A" while visible, then q1 flipped to "No": q2 is
	// hidden, so q3 must be hidden too despite the stored q2 answer.
	answers := model.AnswerSet{
		"q1": choice("No"),
		"q2": choice("A"),
	}
	visible := schema.VisibleSet(answers)
	assert.Equal(t, map[string]bool{"q1": true}, visible)

	answers["q1"] = choice("Yes")
	visible = schema.VisibleSet(answers)
	assert.True(t, visible["q2"])
	assert.True(t, visible["q3"])
}

func TestVisibleSetIsPure(t *testing.T) {
	schema := mustSchema(t, chainedSurvey())
	answers := model.AnswerSet{"q1": choice("Yes"), "q2": choice("B")}

	first := schema.VisibleSet(answers)
	second := schema.VisibleSet(answers)
	assert.Equal(t, first, second)
}

func TestVisibleQuestionsKeepsSchemaOrder(t *testing.T) {
	schema := mustSchema(t, chainedSurvey())

	qs := schema.VisibleQuestions(model.AnswerSet{"q1": choice("Yes"), "q2": choice("A")})
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids)
}
