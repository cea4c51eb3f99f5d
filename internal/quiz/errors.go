package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned while a generation, profile load or submission
	// is outstanding.
	ErrBusy = errors.New("quiz: another operation is in progress")

	// ErrAlreadyCompletedToday is a deferral, not a failure: the topic was
	// already completed today in normal mode.
	ErrAlreadyCompletedToday = errors.New("you already completed this topic today; switch to practice mode to take it again")

	// ErrGenerationFailed matches every *GenerationError.
	ErrGenerationFailed = errors.New("quiz generation failed")

	ErrUnknownTopic  = errors.New("quiz: unknown topic")
	ErrInvalidOption = errors.New("quiz: option index out of range")
	ErrUnanswered    = errors.New("quiz: current question has no answer")

	// ErrDiscarded is returned by an operation whose session was abandoned
	// with ReturnToTopics while it was in flight. Its result was dropped.
	ErrDiscarded = errors.New("quiz: session was discarded")
)

// TransitionError reports an operation that is not valid in the current state.
type TransitionError struct {
	Op   string
	From State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("quiz: cannot %s while %s", e.Op, e.From)
}

// GenerationError wraps a generator failure for a topic. The engine is back
// in StateTopicViewing when one is returned.
type GenerationError struct {
	TopicID string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate quiz for %q: %v", e.TopicID, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// Store operations named in StoreError.Op.
const (
	OpLoad   = "load"
	OpUpdate = "update"
)

// StoreError wraps a profile store failure. On submission it accompanies a
// valid Outcome: the score is right but the profile may not have been saved.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("profile %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
