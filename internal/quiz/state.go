package quiz

import (
	"slices"

	"github.com/abhisek/literacyhub/internal/catalog"
	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/quizgen"
	"github.com/abhisek/literacyhub/internal/scoring"
)

// State is the engine's position in the quiz flow.
type State int

const (
	StateIdle         State = iota // Topic list, no session
	StateTopicViewing              // Reading a topic's content
	StateGenerating                // Waiting on the question generator
	StateInProgress                // Answering questions
	StateSubmitting                // Last question answered, awaiting submission
	StateResults                   // Showing the scored outcome
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTopicViewing:
		return "topic-viewing"
	case StateGenerating:
		return "generating"
	case StateInProgress:
		return "in-progress"
	case StateSubmitting:
		return "submitting"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Session is one attempt at a topic. A new Session is created for every
// topic selection and every retry.
type Session struct {
	ID    string
	Topic catalog.Topic
	Mode  ledger.Mode

	// Questions is fixed once generation succeeds.
	Questions []quizgen.Question

	// CurrentIndex stays within [0, len(Questions)) while answering.
	CurrentIndex int

	// Answers has one entry per question; scoring.Unanswered marks a gap.
	Answers []int
}

// CurrentQuestion returns the question at CurrentIndex.
func (s *Session) CurrentQuestion() (quizgen.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return quizgen.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// CurrentAnswer returns the answer recorded for the current question.
func (s *Session) CurrentAnswer() int {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Answers) {
		return scoring.Unanswered
	}
	return s.Answers[s.CurrentIndex]
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

func (s *Session) clone() *Session {
	out := *s
	out.Questions = slices.Clone(s.Questions)
	out.Answers = slices.Clone(s.Answers)
	return &out
}

func unanswered(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = scoring.Unanswered
	}
	return a
}

// Outcome is the scored result of a submitted session.
type Outcome struct {
	SessionID string
	Topic     catalog.Topic
	Mode      ledger.Mode

	Result    scoring.Result
	Questions []quizgen.Question
	Answers   []int

	// Persisted is true when a normal-mode completion was written.
	Persisted bool

	// FirstToday is true when this completion extended the streak.
	FirstToday bool

	// Previous and Profile bracket the write. Both are nil unless Persisted.
	Previous *ledger.Profile
	Profile  *ledger.Profile
}

// StreakCount returns the streak after this completion, or 0 when nothing
// was persisted.
func (o *Outcome) StreakCount() int {
	if o.Profile == nil {
		return 0
	}
	return o.Profile.StreakCount
}
