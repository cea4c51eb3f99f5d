// Package notify delivers quiz engine events to logs and message brokers.
package notify

import (
	"context"
	"log/slog"

	"github.com/abhisek/literacyhub/internal/quiz"
)

// Multi fans an event out to every notifier in order.
type Multi []quiz.Notifier

// Notify implements quiz.Notifier.
func (m Multi) Notify(ctx context.Context, ev quiz.Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, ev)
		}
	}
}

// Log writes each event as a structured log line. Failures log at warn,
// deferrals and completions at info, everything else at debug.
type Log struct {
	Logger *slog.Logger
}

// Notify implements quiz.Notifier.
func (l Log) Notify(ctx context.Context, ev quiz.Event) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		"kind", ev.Kind,
		"learner", ev.LearnerID,
		"topic", ev.TopicID,
		"mode", ev.Mode,
	}
	if ev.SessionID != "" {
		attrs = append(attrs, "session", ev.SessionID)
	}

	switch ev.Kind {
	case quiz.EventGenerationFailed, quiz.EventSubmissionPersistenceFailed:
		attrs = append(attrs, "message", ev.Message)
		logger.WarnContext(ctx, "quiz event", attrs...)
	case quiz.EventSubmissionSucceeded:
		attrs = append(attrs, "score", ev.ScorePercent, "points", ev.PointsEarned, "streak", ev.StreakCount)
		logger.InfoContext(ctx, "quiz event", attrs...)
	case quiz.EventAlreadyCompletedToday:
		logger.InfoContext(ctx, "quiz event", attrs...)
	default:
		if ev.Questions > 0 {
			attrs = append(attrs, "questions", ev.Questions)
		}
		logger.DebugContext(ctx, "quiz event", attrs...)
	}
}
