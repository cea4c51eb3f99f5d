package store

import (
	"context"
	"time"

	"github.com/abhisek/literacyhub/internal/ledger"
)

// ProfileStore persists learner profiles. It is the only shared resource
// the quiz engine touches.
type ProfileStore interface {
	// LoadProfile returns the learner's profile, or (nil, nil) when the
	// learner has none yet.
	LoadProfile(ctx context.Context, learnerID string) (*ledger.Profile, error)

	// UpdateProfile atomically replaces the learner's profile, including
	// its completion records.
	UpdateProfile(ctx context.Context, learnerID string, p ledger.Profile) error
}

// Backend is a ProfileStore the CLI can administer and close.
type Backend interface {
	ProfileStore

	// DeleteProfile removes the learner's profile and records. Deleting a
	// missing profile is not an error.
	DeleteProfile(ctx context.Context, learnerID string) error

	Close() error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMEventRecorder appends LLM request events.
type LLMEventRecorder interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// QueryOpts filters and paginates event queries. Results are newest first.
type QueryOpts struct {
	Limit   int    // 0 = unlimited
	Purpose string // empty = any
	From    time.Time
	To      time.Time
}

// LLMUsage aggregates LLM calls under one key (a purpose or a model).
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
