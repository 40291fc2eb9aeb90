package engine

import (
	"regexp"
	"strconv"
	"strings"

	"pulseform/internal/model"
)

// ErrorKind classifies a recoverable per-field validation error
type ErrorKind string

const (
	MissingRequired ErrorKind = "missing_required"
	InvalidFormat   ErrorKind = "invalid_format"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the visible questions against the current answers and
// returns all violations keyed by question id. Hidden questions never
// produce errors, even when required and unanswered. An empty map means
// the response is currently valid; Validate itself never fails.
func Validate(s *ValidSchema, visible map[string]bool, answers model.AnswerSet) map[string]ErrorKind {
	errs := make(map[string]ErrorKind)
	for i := range s.survey.Questions {
		q := &s.survey.Questions[i]
		if !visible[q.ID] {
			continue
		}
		ans, ok := answers[q.ID]
		if !ok || ans.IsEmpty() {
			if q.Required {
				errs[q.ID] = MissingRequired
			}
			continue
		}
		switch q.Type {
		case model.QuestionEmail:
			if !emailPattern.MatchString(strings.TrimSpace(ans.Text)) {
				errs[q.ID] = InvalidFormat
			}
		case model.QuestionNumber:
			if _, err := strconv.ParseFloat(strings.TrimSpace(ans.Text), 64); err != nil {
				errs[q.ID] = InvalidFormat
			}
		}
	}
	return errs
}
