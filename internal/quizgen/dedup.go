package quizgen

import "strings"

// DuplicateValidator rejects sets that ask the same question twice.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicates" }

func (v *DuplicateValidator) Validate(questions []Question) *ValidationError {
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		key := normalizePrompt(q.Prompt)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Index:     i,
				Message:   "repeats an earlier question",
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

// normalizePrompt folds case, whitespace and trailing punctuation so that
// trivially reworded repeats compare equal.
func normalizePrompt(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimRight(s, "?.! ")
}
