package service

import (
	"context"

	"pulseform/internal/engine"
	"pulseform/internal/model"
	"pulseform/internal/repository"
)

// SurveyService handles survey authoring: CRUD plus schema validation.
// A survey with an invalid schema is rejected before it is ever stored, so
// respondent sessions only ever see validated schemas.
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
	}
}

// Create validates the schema and stores a new survey. Schema violations
// are returned all together so the authoring UI can show every problem.
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, []engine.SchemaError, error) {
	if _, schemaErrs := engine.ValidateSchema(survey); len(schemaErrs) > 0 {
		return "", schemaErrs, nil
	}
	id, err := s.surveyRepo.Create(ctx, survey)
	if err != nil {
		return "", nil, err
	}
	return id, nil, nil
}

// Update validates the schema and replaces an existing survey
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) ([]engine.SchemaError, error) {
	if _, schemaErrs := engine.ValidateSchema(survey); len(schemaErrs) > 0 {
		return schemaErrs, nil
	}
	return nil, s.surveyRepo.Update(ctx, survey)
}

// ValidateDraft checks a schema without persisting anything, for the
// authoring preview
func (s *SurveyService) ValidateDraft(survey *model.Survey) []engine.SchemaError {
	_, schemaErrs := engine.ValidateSchema(survey)
	return schemaErrs
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// GetByHostID retrieves all surveys for a host
func (s *SurveyService) GetByHostID(ctx context.Context, hostID string) ([]*model.Survey, error) {
	return s.surveyRepo.GetByHostID(ctx, hostID)
}

// Delete deletes a survey
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	return s.surveyRepo.Delete(ctx, id)
}
