package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"pulseform/internal/model"
)

var (
	ErrSessionSubmitted = errors.New("session already submitted")
	ErrSubmitInFlight   = errors.New("submission already in progress")
	ErrUnknownQuestion  = errors.New("unknown question")
)

// ValidationFailedError carries the field errors that blocked a submit
type ValidationFailedError struct {
	Errors map[string]ErrorKind
}

func (e *ValidationFailedError) Error() string {
	return "response has validation errors"
}

// SubmitFailedError wraps a sink failure. The session has already returned
// to editing with its answers intact when this is seen.
type SubmitFailedError struct {
	Reason string
}

func (e *SubmitFailedError) Error() string {
	return "submission failed: " + e.Reason
}

// SubmissionSink receives the final filtered payload. Implementations own
// persistence and transport; the engine never retries on its own, retry is
// the caller re-invoking Submit.
type SubmissionSink interface {
	Submit(ctx context.Context, sub *model.Submission) (*model.SubmissionAck, error)
}

// Session is the mutable aggregate of one in-progress response: the current
// answers, visited questions, timing, and the submission lifecycle state.
// Every mutation synchronously recomputes visibility, validation and
// progress. A session is owned by one logical respondent; the mutex only
// backs the submit re-entrancy guard and mutation rejection while a submit
// is in flight.
type Session struct {
	mu sync.Mutex

	id        string
	schema    *ValidSchema
	answers   model.AnswerSet
	visited   map[string]bool
	startedAt time.Time
	status    model.SessionStatus

	// derived, rebuilt on every mutation
	visible  map[string]bool
	errors   map[string]ErrorKind
	progress float64

	lastSubmitError string
	ack             *model.SubmissionAck
}

// NewSession creates a fresh editing session for a validated schema
func NewSession(schema *ValidSchema) *Session {
	s := &Session{
		id:        uuid.New().String(),
		schema:    schema,
		answers:   make(model.AnswerSet),
		visited:   make(map[string]bool),
		startedAt: time.Now(),
		status:    model.SessionEditing,
	}
	s.recompute()
	return s
}

// Rehydrate rebuilds a session from its persisted record. Transient
// statuses collapse back to editing; submitted stays terminal.
func Rehydrate(schema *ValidSchema, rec *model.SessionRecord) *Session {
	status := rec.Status
	if status != model.SessionSubmitted {
		status = model.SessionEditing
	}
	s := &Session{
		id:        rec.ID,
		schema:    schema,
		answers:   rec.Answers.Clone(),
		visited:   make(map[string]bool, len(rec.Visited)),
		startedAt: rec.StartedAt,
		status:    status,
	}
	if s.answers == nil {
		s.answers = make(model.AnswerSet)
	}
	for _, id := range rec.Visited {
		s.visited[id] = true
	}
	s.recompute()
	return s
}

func (s *Session) recompute() {
	s.visible = s.schema.VisibleSet(s.answers)
	s.errors = Validate(s.schema, s.visible, s.answers)
	s.progress = Progress(s.visible, s.answers)
}

func (s *Session) mutable() error {
	switch s.status {
	case model.SessionSubmitted:
		return ErrSessionSubmitted
	case model.SessionValidating, model.SessionSubmitting:
		return ErrSubmitInFlight
	}
	return nil
}

// SetAnswer stores a value and recomputes derived state. The answer of a
// hidden question is retained but excluded from validation and progress, so
// toggling an earlier answer back and forth never loses later input.
func (s *Session) SetAnswer(questionID string, value model.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}
	if _, ok := s.schema.Question(questionID); !ok {
		return ErrUnknownQuestion
	}
	s.answers[questionID] = value
	s.visited[questionID] = true
	s.recompute()
	return nil
}

// ClearAnswer removes the stored value entirely, returning the question to
// "unanswered" (distinct from holding an empty value)
func (s *Session) ClearAnswer(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}
	if _, ok := s.schema.Question(questionID); !ok {
		return ErrUnknownQuestion
	}
	delete(s.answers, questionID)
	s.recompute()
	return nil
}

// MarkVisited records that the respondent has seen a question
func (s *Session) MarkVisited(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}
	if _, ok := s.schema.Question(questionID); !ok {
		return ErrUnknownQuestion
	}
	s.visited[questionID] = true
	return nil
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Status returns the current lifecycle state
func (s *Session) Status() model.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// StartedAt returns when the session was created
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Answers returns a copy of all stored answers, including hidden ones
func (s *Session) Answers() model.AnswerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// Visible returns a copy of the current visible set
func (s *Session) Visible() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.visible))
	for id, shown := range s.visible {
		if shown {
			out[id] = true
		}
	}
	return out
}

// VisibleQuestions returns the visible questions in schema order
func (s *Session) VisibleQuestions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Question, 0, len(s.visible))
	for _, q := range s.schema.Questions() {
		if s.visible[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// Errors returns a copy of the current field error map
func (s *Session) Errors() map[string]ErrorKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyErrors(s.errors)
}

// Progress returns the current completion percentage
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// LastSubmitError returns the reason of the most recent failed submit, or
// empty if none
func (s *Session) LastSubmitError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSubmitError
}

// Ack returns the sink acknowledgment once submitted, nil before
func (s *Session) Ack() *model.SubmissionAck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack
}

// Record returns the persistable form of the session
func (s *Session) Record() *model.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	visited := make([]string, 0, len(s.visited))
	for _, q := range s.schema.Questions() {
		if s.visited[q.ID] {
			visited = append(visited, q.ID)
		}
	}
	status := s.status
	if status != model.SessionSubmitted {
		status = model.SessionEditing
	}
	return &model.SessionRecord{
		ID:        s.id,
		SurveyID:  s.schema.Survey().ID,
		Answers:   s.answers.Clone(),
		Visited:   visited,
		StartedAt: s.startedAt,
		Status:    status,
	}
}

// Submit drives editing -> validating -> submitting -> submitted. With any
// field errors the session drops straight back to editing and the errors
// are returned; no payload reaches the sink. On sink failure the session
// returns to editing with all answers intact and the reason recorded. A
// submit while one is already validating or submitting is rejected with
// ErrSubmitInFlight, so repeated user action produces exactly one payload.
func (s *Session) Submit(ctx context.Context, sink SubmissionSink, meta *model.RespondentMeta) (*model.SubmissionAck, error) {
	s.mu.Lock()
	switch s.status {
	case model.SessionSubmitted:
		s.mu.Unlock()
		return nil, ErrSessionSubmitted
	case model.SessionValidating, model.SessionSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	s.status = model.SessionValidating
	s.recompute()
	if len(s.errors) > 0 {
		errs := copyErrors(s.errors)
		s.status = model.SessionEditing
		s.mu.Unlock()
		return nil, &ValidationFailedError{Errors: errs}
	}

	payload := &model.Submission{
		SessionID:             s.id,
		SurveyID:              s.schema.Survey().ID,
		Answers:               s.visibleAnswers(),
		CompletionTimeSeconds: int(time.Since(s.startedAt).Seconds()),
		Respondent:            meta,
	}
	s.status = model.SessionSubmitting
	s.mu.Unlock()

	// The sink call is the only asynchronous boundary; the session stays in
	// submitting (rejecting mutations) for however long it takes.
	ack, err := sink.Submit(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = model.SessionEditing
		s.lastSubmitError = err.Error()
		return nil, &SubmitFailedError{Reason: err.Error()}
	}
	s.status = model.SessionSubmitted
	s.lastSubmitError = ""
	s.ack = ack
	return ack, nil
}

// visibleAnswers filters the working answers down to the visible set.
// Callers hold s.mu.
func (s *Session) visibleAnswers() model.AnswerSet {
	filtered := make(model.AnswerSet, len(s.answers))
	for id, v := range s.answers {
		if s.visible[id] {
			filtered[id] = v
		}
	}
	return filtered
}

func copyErrors(in map[string]ErrorKind) map[string]ErrorKind {
	out := make(map[string]ErrorKind, len(in))
	for id, kind := range in {
		out[id] = kind
	}
	return out
}
