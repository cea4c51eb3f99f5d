package quizgen

import (
	"fmt"
	"strings"
)

const (
	maxPromptLen      = 500
	maxOptionLen      = 200
	maxExplanationLen = 1000
	minOptions        = 2
	maxOptions        = 6
)

// StructuralValidator checks that every question has a prompt, a sane
// number of distinct non-empty options, and a correct index that points
// at one of them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(questions []Question) *ValidationError {
	for i, q := range questions {
		if msg := checkQuestion(q); msg != "" {
			return &ValidationError{
				Validator: v.Name(),
				Index:     i,
				Message:   msg,
				Retryable: true,
			}
		}
	}
	return nil
}

func checkQuestion(q Question) string {
	if strings.TrimSpace(q.Prompt) == "" {
		return "prompt is empty"
	}
	if len(q.Prompt) > maxPromptLen {
		return fmt.Sprintf("prompt exceeds %d characters", maxPromptLen)
	}
	if len(q.Options) < minOptions {
		return fmt.Sprintf("has %d options, need at least %d", len(q.Options), minOptions)
	}
	if len(q.Options) > maxOptions {
		return fmt.Sprintf("has %d options, at most %d allowed", len(q.Options), maxOptions)
	}

	seen := make(map[string]bool, len(q.Options))
	for j, opt := range q.Options {
		norm := strings.ToLower(strings.TrimSpace(opt))
		if norm == "" {
			return fmt.Sprintf("option %d is empty", j+1)
		}
		if len(opt) > maxOptionLen {
			return fmt.Sprintf("option %d exceeds %d characters", j+1, maxOptionLen)
		}
		if seen[norm] {
			return fmt.Sprintf("option %q appears more than once", opt)
		}
		seen[norm] = true
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Sprintf("correct_index %d is out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	if len(q.Explanation) > maxExplanationLen {
		return fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen)
	}
	return ""
}
