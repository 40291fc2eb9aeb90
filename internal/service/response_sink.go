package service

import (
	"context"
	"fmt"

	"pulseform/internal/model"
	"pulseform/internal/repository"
)

// responseSink is the default submission sink: it persists the filtered
// payload and acknowledges with the survey's thank-you message. Duplicate
// payloads for a session are refused, which backstops the engine's
// re-entrancy guard across server restarts.
type responseSink struct {
	repo     repository.ResponseRepo
	thankYou string
}

func (k *responseSink) Submit(ctx context.Context, sub *model.Submission) (*model.SubmissionAck, error) {
	existing, err := k.repo.GetBySessionID(ctx, sub.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing response: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("session %s already has a submitted response", sub.SessionID)
	}

	rec := &model.ResponseRecord{
		SurveyID:              sub.SurveyID,
		SessionID:             sub.SessionID,
		Answers:               sub.Answers,
		CompletionTimeSeconds: sub.CompletionTimeSeconds,
		Respondent:            sub.Respondent,
	}
	id, err := k.repo.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	return &model.SubmissionAck{
		ResponseID: id,
		Message:    k.thankYou,
	}, nil
}
