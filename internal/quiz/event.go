package quiz

import (
	"context"
	"time"
)

// EventKind names a notification the engine emits.
type EventKind string

const (
	EventQuizReady                   EventKind = "quiz_ready"
	EventAlreadyCompletedToday       EventKind = "already_completed_today"
	EventGenerationFailed            EventKind = "generation_failed"
	EventSubmissionSucceeded         EventKind = "submission_succeeded"
	EventSubmissionPersistenceFailed EventKind = "submission_persistence_failed"
)

// Event is a session or results notification.
type Event struct {
	Kind      EventKind `json:"kind"`
	Time      time.Time `json:"time"`
	LearnerID string    `json:"learner_id"`
	SessionID string    `json:"session_id,omitempty"`
	TopicID   string    `json:"topic_id"`
	Mode      string    `json:"mode"`

	// Questions is set on quiz_ready.
	Questions int `json:"questions,omitempty"`

	// Set on submission events.
	ScorePercent float64 `json:"score_percent,omitempty"`
	PointsEarned int     `json:"points_earned,omitempty"`
	StreakCount  int     `json:"streak_count,omitempty"`

	// Message is the user-facing text for deferrals and failures.
	Message string `json:"message,omitempty"`
}

// Notifier receives engine events. Implementations must not block for long
// and handle their own delivery failures.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event)

func (f NotifierFunc) Notify(ctx context.Context, ev Event) { f(ctx, ev) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Event) {}
