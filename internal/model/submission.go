package model

import "time"

// RespondentMeta is optional contact info supplied at submit time
type RespondentMeta struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// Submission is the final payload handed to the submission sink. Answers is
// filtered to the currently-visible set; hidden answers never leave the
// session.
type Submission struct {
	SessionID             string          `json:"sessionId"`
	SurveyID              string          `json:"surveyId"`
	Answers               AnswerSet       `json:"answers"`
	CompletionTimeSeconds int             `json:"completionTimeSeconds"`
	Respondent            *RespondentMeta `json:"respondentMeta,omitempty"`
}

// SubmissionAck is the sink's success acknowledgment
type SubmissionAck struct {
	ResponseID string `json:"responseId"`
	Message    string `json:"message,omitempty"` // optional thank-you text
}

// ResponseRecord is a submitted response as stored by the default sink
type ResponseRecord struct {
	ID                    string          `json:"id" bson:"_id,omitempty"`
	SurveyID              string          `json:"surveyId" bson:"surveyId"`
	SessionID             string          `json:"sessionId" bson:"sessionId"`
	Answers               AnswerSet       `json:"answers" bson:"answers"`
	CompletionTimeSeconds int             `json:"completionTimeSeconds" bson:"completionTimeSeconds"`
	Respondent            *RespondentMeta `json:"respondentMeta,omitempty" bson:"respondentMeta,omitempty"`
	SubmittedAt           time.Time       `json:"submittedAt" bson:"submittedAt"`
}
