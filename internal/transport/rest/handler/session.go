package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pulseform/internal/engine"
	"pulseform/internal/model"
	"pulseform/internal/service"
)

// SessionHandler handles the public respondent endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// SubmitRequest is the request body for submitting a session
type SubmitRequest struct {
	Respondent *model.RespondentMeta `json:"respondentMeta,omitempty"`
}

// Start handles POST /v1/surveys/{surveyId}/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	view, err := h.sessionSvc.Start(r.Context(), surveyID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	view, err := h.sessionSvc.Get(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SetAnswer handles PUT /v1/sessions/{sessionId}/answers/{questionId}
func (h *SessionHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var value model.AnswerValue
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.sessionSvc.SetAnswer(r.Context(), vars["sessionId"], vars["questionId"], value)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ClearAnswer handles DELETE /v1/sessions/{sessionId}/answers/{questionId}
func (h *SessionHandler) ClearAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	view, err := h.sessionSvc.ClearAnswer(r.Context(), vars["sessionId"], vars["questionId"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// MarkVisited handles POST /v1/sessions/{sessionId}/visited/{questionId}
func (h *SessionHandler) MarkVisited(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.sessionSvc.MarkVisited(r.Context(), vars["sessionId"], vars["questionId"]); err != nil {
		writeSessionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Submit handles POST /v1/sessions/{sessionId}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SubmitRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	ack, err := h.sessionSvc.Submit(r.Context(), sessionID, req.Respondent)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

// writeSessionError maps service and engine errors onto HTTP statuses.
// Validation errors, schema errors, and submission failures are kept
// distinct so clients never conflate "you missed a field" with "the
// network failed".
func writeSessionError(w http.ResponseWriter, err error) {
	var validationErr *engine.ValidationFailedError
	var schemaErr *engine.InvalidSchemaError
	var submitErr *engine.SubmitFailedError

	switch {
	case errors.Is(err, service.ErrSurveyNotFound), errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSurveyClosed):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, engine.ErrUnknownQuestion):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrSessionSubmitted), errors.Is(err, engine.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  validationErr.Error(),
			"errors": validationErr.Errors,
		})
	case errors.As(err, &schemaErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":        schemaErr.Error(),
			"schemaErrors": schemaErr.Errors,
		})
	case errors.As(err, &submitErr):
		writeError(w, http.StatusBadGateway, submitErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
