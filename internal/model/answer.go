package model

// AnswerValue holds a respondent's value for one question. Scalar types
// (text, number, date, rating, email, phone) use Text; single_choice and
// dropdown use SelectedOption; multiple_choice uses SelectedOptions.
// Absence of a key in an AnswerSet means "unanswered", which is distinct
// from a stored empty value.
type AnswerValue struct {
	Text            string   `json:"text,omitempty" bson:"text,omitempty"`
	SelectedOption  string   `json:"selectedOption,omitempty" bson:"selectedOption,omitempty"`
	SelectedOptions []string `json:"selectedOptions,omitempty" bson:"selectedOptions,omitempty"`
}

// IsEmpty reports whether the value counts as unanswered
func (v AnswerValue) IsEmpty() bool {
	return v.Text == "" && v.SelectedOption == "" && len(v.SelectedOptions) == 0
}

// Discrete returns the single discrete value used for visibility condition
// matching. Only single_choice and dropdown answers ever reach this path.
func (v AnswerValue) Discrete() string {
	if v.SelectedOption != "" {
		return v.SelectedOption
	}
	return v.Text
}

// AnswerSet maps question ids to their current values
type AnswerSet map[string]AnswerValue

// Clone returns an independent copy of the set
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for id, v := range a {
		out[id] = v
	}
	return out
}
