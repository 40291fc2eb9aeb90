package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pulseform/internal/model"
	"pulseform/internal/service"
	"pulseform/internal/transport/rest/middleware"
)

// SurveyHandler handles survey authoring endpoints
type SurveyHandler struct {
	surveySvc  *service.SurveyService
	sessionSvc *service.SessionService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, sessionSvc *service.SessionService) *SurveyHandler {
	return &SurveyHandler{
		surveySvc:  surveySvc,
		sessionSvc: sessionSvc,
	}
}

// SurveyRequest is the request body for creating or updating a survey
type SurveyRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Settings    model.SurveySettings `json:"settings"`
	Questions   []model.Question     `json:"questions"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		HostID:      hostID,
		Title:       req.Title,
		Description: req.Description,
		Settings:    req.Settings,
		Questions:   req.Questions,
	}

	id, schemaErrs, err := h.surveySvc.Create(r.Context(), survey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(schemaErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"schemaErrors": schemaErrs})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"surveyId": id})
}

// Update handles PUT /v1/surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		ID:          surveyID,
		HostID:      hostID,
		Title:       req.Title,
		Description: req.Description,
		Settings:    req.Settings,
		Questions:   req.Questions,
	}

	schemaErrs, err := h.surveySvc.Update(r.Context(), survey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(schemaErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"schemaErrors": schemaErrs})
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Validate handles POST /v1/surveys/validate. It checks a draft schema
// without saving anything, so the authoring preview can report every
// violation while the author is still editing.
func (h *SurveyHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		Title:     req.Title,
		Settings:  req.Settings,
		Questions: req.Questions,
	}

	schemaErrs := h.surveySvc.ValidateDraft(survey)
	if len(schemaErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"valid": false, "schemaErrors": schemaErrs})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"valid": true})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if survey == nil {
		writeError(w, http.StatusNotFound, "survey not found")
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	surveys, err := h.surveySvc.GetByHostID(r.Context(), hostID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.surveySvc.Delete(r.Context(), surveyID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Responses handles GET /v1/surveys/{surveyId}/responses
func (h *SurveyHandler) Responses(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := h.sessionSvc.ListResponses(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}
