package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pulseform/internal/model"
)

func TestProgressOverVisibleSet(t *testing.T) {
	visible := map[string]bool{"q1": true, "q2": true}

	assert.Equal(t, 0.0, Progress(visible, model.AnswerSet{}))
	assert.Equal(t, 50.0, Progress(visible, model.AnswerSet{"q1": text("x")}))
	assert.Equal(t, 100.0, Progress(visible, model.AnswerSet{"q1": text("x"), "q2": text("y")}))
}

func TestProgressIgnoresHiddenAnswers(t *testing.T) {
	visible := map[string]bool{"q1": true}
	answers := model.AnswerSet{
		"q1": text("x"),
		"q2": text("left over from when q2 was visible"),
	}
	assert.Equal(t, 100.0, Progress(visible, answers))
}

func TestProgressEmptyValuesDoNotCount(t *testing.T) {
	visible := map[string]bool{"q1": true, "q2": true}
	answers := model.AnswerSet{"q1": {Text: ""}, "q2": text("y")}
	assert.Equal(t, 50.0, Progress(visible, answers))
}

func TestProgressZeroVisibleIsZeroNotNaN(t *testing.T) {
	got := Progress(map[string]bool{}, model.AnswerSet{"q1": text("x")})
	assert.Equal(t, 0.0, got)
	assert.False(t, math.IsNaN(got))
}
