package engine

import "pulseform/internal/model"

// Progress returns completion over the visible set as a percentage in
// [0,100]. Answered means a non-empty value is present. Zero visible
// questions yields 0, never NaN. Purely derived; never stored.
func Progress(visible map[string]bool, answers model.AnswerSet) float64 {
	total := 0
	answered := 0
	for id, shown := range visible {
		if !shown {
			continue
		}
		total++
		if ans, ok := answers[id]; ok && !ans.IsEmpty() {
			answered++
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(answered) / float64(total)
}
