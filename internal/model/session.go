package model

import "time"

// SessionStatus tags the submission lifecycle state of a response session
type SessionStatus string

const (
	SessionEditing    SessionStatus = "editing"
	SessionValidating SessionStatus = "validating"
	SessionSubmitting SessionStatus = "submitting"
	SessionSubmitted  SessionStatus = "submitted"
)

// SessionRecord is the persisted form of an in-progress response session.
// The transient validating/submitting states are never persisted; a record
// is either still editable or terminally submitted.
type SessionRecord struct {
	ID        string        `json:"id"`
	SurveyID  string        `json:"surveyId"`
	Answers   AnswerSet     `json:"answers"`
	Visited   []string      `json:"visited,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	Status    SessionStatus `json:"status"`
}

// SessionView is the derived state returned to clients after every mutation
type SessionView struct {
	SessionID string            `json:"sessionId"`
	SurveyID  string            `json:"surveyId"`
	Status    SessionStatus     `json:"status"`
	Questions []Question        `json:"questions"` // visible questions, schema order
	Answers   AnswerSet         `json:"answers"`
	Errors    map[string]string `json:"errors"` // question id -> error kind
	Progress  float64           `json:"progress"`
}
