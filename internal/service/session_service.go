package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pulseform/internal/cache"
	"pulseform/internal/engine"
	"pulseform/internal/model"
	"pulseform/internal/repository"
)

// swapped out in tests
var timeNow = time.Now

var (
	ErrSurveyNotFound  = errors.New("survey not found")
	ErrSurveyClosed    = errors.New("survey is closed")
	ErrSessionNotFound = errors.New("session not found")
)

// liveSession pairs an engine session with the validated schema it runs
// against and the survey it came from
type liveSession struct {
	survey  *model.Survey
	schema  *engine.ValidSchema
	session *engine.Session
}

// SessionService owns all in-progress response sessions. Each engine
// session lives in memory with exactly one owner; every mutation is written
// through to the session cache so a restarted server can rehydrate.
type SessionService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	sessionCache cache.SessionCache
	broadcaster  Broadcaster

	mu   sync.Mutex
	live map[string]*liveSession
}

// NewSessionService creates a new session service
func NewSessionService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	sessionCache cache.SessionCache,
) *SessionService {
	return &SessionService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		sessionCache: sessionCache,
		live:         make(map[string]*liveSession),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start creates a session for a survey. The schema is validated once here;
// a survey that fails never gets a session.
func (s *SessionService) Start(ctx context.Context, surveyID string) (*model.SessionView, error) {
	ls, err := s.load(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOpen(ctx, ls.survey); err != nil {
		return nil, err
	}

	sess := engine.NewSession(ls.schema)
	ls.session = sess

	s.mu.Lock()
	s.live[sess.ID()] = ls
	s.mu.Unlock()

	if err := s.sessionCache.Set(ctx, sess.Record()); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return s.view(ls), nil
}

// Get returns the current derived state of a session
func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.SessionView, error) {
	ls, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ls), nil
}

// SetAnswer stores an answer and returns the refreshed derived state
func (s *SessionService) SetAnswer(ctx context.Context, sessionID, questionID string, value model.AnswerValue) (*model.SessionView, error) {
	ls, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ls.session.SetAnswer(questionID, value); err != nil {
		return nil, err
	}
	if err := s.sessionCache.Set(ctx, ls.session.Record()); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return s.view(ls), nil
}

// ClearAnswer removes an answer entirely and returns the refreshed state
func (s *SessionService) ClearAnswer(ctx context.Context, sessionID, questionID string) (*model.SessionView, error) {
	ls, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ls.session.ClearAnswer(questionID); err != nil {
		return nil, err
	}
	if err := s.sessionCache.Set(ctx, ls.session.Record()); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return s.view(ls), nil
}

// MarkVisited records that the respondent reached a question
func (s *SessionService) MarkVisited(ctx context.Context, sessionID, questionID string) error {
	ls, err := s.resolve(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := ls.session.MarkVisited(questionID); err != nil {
		return err
	}
	return s.sessionCache.Set(ctx, ls.session.Record())
}

// Submit runs the submission state machine against the default sink. On
// success the submitted record stays cached as the duplicate-submit
// backstop and connected authors are notified.
func (s *SessionService) Submit(ctx context.Context, sessionID string, meta *model.RespondentMeta) (*model.SubmissionAck, error) {
	ls, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sink := &responseSink{
		repo:     s.responseRepo,
		thankYou: ls.survey.Settings.ThankYouMessage,
	}
	ack, err := ls.session.Submit(ctx, sink, meta)
	if err != nil {
		return nil, err
	}

	if err := s.sessionCache.Set(ctx, ls.session.Record()); err != nil {
		// The response is stored; a stale cache record only risks a
		// duplicate-submit attempt, which the repo's session id lookup
		// still catches.
		return ack, nil
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(ls.survey.ID, "response_submitted", map[string]interface{}{
			"responseId": ack.ResponseID,
			"sessionId":  sessionID,
		})
	}
	return ack, nil
}

// ListResponses returns the submitted responses of a survey
func (s *SessionService) ListResponses(ctx context.Context, surveyID string) ([]*model.ResponseRecord, error) {
	return s.responseRepo.GetBySurveyID(ctx, surveyID)
}

// load fetches and validates a survey's schema
func (s *SessionService) load(ctx context.Context, surveyID string) (*liveSession, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	schema, schemaErrs := engine.ValidateSchema(survey)
	if len(schemaErrs) > 0 {
		return nil, &engine.InvalidSchemaError{Errors: schemaErrs}
	}
	return &liveSession{survey: survey, schema: schema}, nil
}

// checkOpen enforces the survey-level closing conditions
func (s *SessionService) checkOpen(ctx context.Context, survey *model.Survey) error {
	if survey.Settings.ClosesAt != nil && survey.Settings.ClosesAt.Before(timeNow()) {
		return ErrSurveyClosed
	}
	if survey.Settings.MaxResponses > 0 {
		count, err := s.responseRepo.CountBySurveyID(ctx, survey.ID)
		if err != nil {
			return fmt.Errorf("failed to count responses: %w", err)
		}
		if count >= int64(survey.Settings.MaxResponses) {
			return ErrSurveyClosed
		}
	}
	return nil
}

// resolve returns the live session, rehydrating from the cache after a
// restart. The first resolved instance wins so one engine session stays
// the single owner of its state.
func (s *SessionService) resolve(ctx context.Context, sessionID string) (*liveSession, error) {
	s.mu.Lock()
	ls, ok := s.live[sessionID]
	s.mu.Unlock()
	if ok {
		return ls, nil
	}

	rec, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}

	ls, err = s.load(ctx, rec.SurveyID)
	if err != nil {
		return nil, err
	}
	ls.session = engine.Rehydrate(ls.schema, rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.live[sessionID]; ok {
		return existing, nil
	}
	s.live[sessionID] = ls
	return ls, nil
}

// view assembles the client-facing derived state of a session
func (s *SessionService) view(ls *liveSession) *model.SessionView {
	errs := ls.session.Errors()
	viewErrs := make(map[string]string, len(errs))
	for id, kind := range errs {
		viewErrs[id] = string(kind)
	}
	return &model.SessionView{
		SessionID: ls.session.ID(),
		SurveyID:  ls.survey.ID,
		Status:    ls.session.Status(),
		Questions: ls.session.VisibleQuestions(),
		Answers:   ls.session.Answers(),
		Errors:    viewErrs,
		Progress:  ls.session.Progress(),
	}
}
