package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionShortText      QuestionType = "short_text"
	QuestionLongText       QuestionType = "long_text"
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionDropdown       QuestionType = "dropdown"
	QuestionDate           QuestionType = "date"
	QuestionNumber         QuestionType = "number"
	QuestionEmail          QuestionType = "email"
	QuestionPhone          QuestionType = "phone"
	QuestionRating         QuestionType = "rating"
)

// DefaultMaxRating is used when a rating question leaves MaxRating unset
const DefaultMaxRating = 5

// IsValid reports whether t is one of the supported question types
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionShortText, QuestionLongText, QuestionSingleChoice,
		QuestionMultipleChoice, QuestionDropdown, QuestionDate,
		QuestionNumber, QuestionEmail, QuestionPhone, QuestionRating:
		return true
	}
	return false
}

// IsDiscrete reports whether t produces a single discrete value, which is
// required of a visibility condition target
func (t QuestionType) IsDiscrete() bool {
	return t == QuestionSingleChoice || t == QuestionDropdown
}

// IsChoice reports whether t requires a non-empty options list
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultipleChoice, QuestionDropdown:
		return true
	}
	return false
}

// VisibilityCondition hides a question unless an earlier question currently
// holds a specific value. DependsOn must reference a question that appears
// strictly earlier in the survey and is single_choice or dropdown.
type VisibilityCondition struct {
	DependsOn   string `json:"dependsOn" bson:"dependsOn"`
	EqualsValue string `json:"equalsValue" bson:"equalsValue"`
}

// Question is a single question definition in a survey
type Question struct {
	ID          string               `json:"id" bson:"id"`
	Type        QuestionType         `json:"type" bson:"type"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	Required    bool                 `json:"required" bson:"required"`
	Options     []string             `json:"options,omitempty" bson:"options,omitempty"` // choice/dropdown types only
	MaxRating   int                  `json:"maxRating,omitempty" bson:"maxRating,omitempty"`
	Visibility  *VisibilityCondition `json:"visibilityCondition,omitempty" bson:"visibilityCondition,omitempty"`
}
