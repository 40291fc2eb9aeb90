package model

import "time"

// SurveySettings is survey-level metadata the engine passes through untouched
type SurveySettings struct {
	ThankYouMessage string     `json:"thankYouMessage,omitempty" bson:"thankYouMessage,omitempty"`
	ClosesAt        *time.Time `json:"closesAt,omitempty" bson:"closesAt,omitempty"`
	MaxResponses    int        `json:"maxResponses,omitempty" bson:"maxResponses,omitempty"`
}

// Survey is a persistent template created by a host. The question sequence is
// ordered; visibility conditions may only point backward within it.
type Survey struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	HostID      string         `json:"hostId" bson:"hostId"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Settings    SurveySettings `json:"settings" bson:"settings"`
	Questions   []Question     `json:"questions" bson:"questions"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}
