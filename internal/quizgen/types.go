// Package quizgen turns topic text into a set of multiple-choice questions.
package quizgen

import (
	"context"
	"errors"
)

// ErrNoQuestions is returned when a generator produced an empty question set.
var ErrNoQuestions = errors.New("quizgen: generator returned no questions")

// Question is one generated multiple-choice question.
type Question struct {
	Prompt string `json:"prompt" yaml:"prompt"`

	// Options holds at least two answer choices in display order.
	Options []string `json:"options" yaml:"options"`

	// CorrectIndex is the index into Options of the right answer.
	CorrectIndex int `json:"correct_index" yaml:"correct_index"`

	// Explanation is shown on the results screen. May be empty.
	Explanation string `json:"explanation,omitempty" yaml:"explanation"`
}

// CorrectOption returns the index of the right answer.
func (q Question) CorrectOption() int { return q.CorrectIndex }

// Generator produces the questions for a topic.
type Generator interface {
	// Generate returns a non-empty, validated question set for the topic,
	// or an error. It never returns an empty slice with a nil error.
	Generate(ctx context.Context, title, content string) ([]Question, error)
}

type countKey struct{}

// WithQuestionCount asks generators for n questions. Generators that cannot
// honour the request may return fewer.
func WithQuestionCount(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, countKey{}, n)
}

// QuestionCountFrom returns the count set by WithQuestionCount, or def when
// none (or a non-positive count) was set.
func QuestionCountFrom(ctx context.Context, def int) int {
	if n, ok := ctx.Value(countKey{}).(int); ok && n > 0 {
		return n
	}
	return def
}
