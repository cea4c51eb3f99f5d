// Package ledger decides how a quiz completion changes a learner's profile.
//
// The ledger is pure: it never talks to storage. Callers load a Profile,
// ask the ledger for the replacement, and persist that replacement as one
// atomic update.
package ledger

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/abhisek/literacyhub/internal/scoring"
)

// Mode selects whether a quiz attempt counts toward the learner's profile.
type Mode int

const (
	ModeNormal   Mode = iota // Completions update streak, points and records
	ModePractice             // Completions never touch the profile
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePractice:
		return "practice"
	default:
		return "unknown"
	}
}

// CompletionRecord is durable evidence that a topic was completed on a day.
type CompletionRecord struct {
	TopicID string
	Date    civil.Date
	Score   int // 0-100
}

// Profile is the learner state the ledger reads and replaces.
type Profile struct {
	StreakCount int
	TotalPoints int

	// LastLessonDate is nil until the first normal-mode completion.
	LastLessonDate *civil.Date

	// CompletedLessons holds at most one record per (TopicID, Date).
	CompletedLessons []CompletionRecord
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	out := p
	if p.LastLessonDate != nil {
		d := *p.LastLessonDate
		out.LastLessonDate = &d
	}
	if p.CompletedLessons != nil {
		out.CompletedLessons = make([]CompletionRecord, len(p.CompletedLessons))
		copy(out.CompletedLessons, p.CompletedLessons)
	}
	return out
}

// Update is the ledger's verdict for one completion.
type Update struct {
	// Apply is false when nothing may be written (practice mode).
	Apply bool

	// Profile is the full replacement profile when Apply is true, and the
	// untouched input otherwise.
	Profile Profile

	// FirstToday is true when this completion is the first of its day and
	// therefore extended the streak.
	FirstToday bool
}

// Today returns the calendar day of now in loc. A nil loc means local time.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(now.In(loc))
}

// RecordCompletion computes the profile that results from completing
// topicID on today with the given score.
//
// The streak grows at most once per calendar day, points always add up,
// and an existing record for (topicID, today) is replaced rather than
// duplicated. The input profile is never modified.
func RecordCompletion(p Profile, topicID string, today civil.Date, scorePercent float64, pointsEarned int, mode Mode) Update {
	if mode == ModePractice {
		return Update{Apply: false, Profile: p}
	}

	next := p.Clone()

	alreadyToday := p.LastLessonDate != nil && *p.LastLessonDate == today
	if !alreadyToday {
		next.StreakCount = p.StreakCount + 1
	}

	next.TotalPoints = p.TotalPoints + max(pointsEarned, 0)

	lessons := make([]CompletionRecord, 0, len(p.CompletedLessons)+1)
	for _, r := range p.CompletedLessons {
		if r.TopicID == topicID && r.Date == today {
			continue
		}
		lessons = append(lessons, r)
	}
	lessons = append(lessons, CompletionRecord{
		TopicID: topicID,
		Date:    today,
		Score:   clampScore(scoring.RoundHalfUp(scorePercent)),
	})
	next.CompletedLessons = lessons

	d := today
	next.LastLessonDate = &d

	return Update{Apply: true, Profile: next, FirstToday: !alreadyToday}
}

// CompletedOn reports whether topicID has a completion record for day.
func CompletedOn(p Profile, topicID string, day civil.Date) bool {
	for _, r := range p.CompletedLessons {
		if r.TopicID == topicID && r.Date == day {
			return true
		}
	}
	return false
}

// DailyChallengeDone reports whether any normal-mode completion happened on day.
func DailyChallengeDone(p Profile, day civil.Date) bool {
	return p.LastLessonDate != nil && *p.LastLessonDate == day
}

// BestScores returns the best recorded score per topic.
func BestScores(p Profile) map[string]int {
	best := make(map[string]int)
	for _, r := range p.CompletedLessons {
		if cur, ok := best[r.TopicID]; !ok || r.Score > cur {
			best[r.TopicID] = r.Score
		}
	}
	return best
}

// Sanitize applies load-time defaults to a profile read from storage:
// negative counters become zero, scores are clamped to 0-100, records with
// an empty topic or invalid date are dropped, and duplicate (topic, date)
// records collapse to the last one seen.
func Sanitize(p Profile) Profile {
	out := p.Clone()
	out.StreakCount = max(out.StreakCount, 0)
	out.TotalPoints = max(out.TotalPoints, 0)
	if out.LastLessonDate != nil && !out.LastLessonDate.IsValid() {
		out.LastLessonDate = nil
	}

	type key struct {
		topic string
		date  civil.Date
	}
	last := make(map[key]int, len(out.CompletedLessons))
	for i, r := range out.CompletedLessons {
		last[key{r.TopicID, r.Date}] = i
	}

	var lessons []CompletionRecord
	for i, r := range out.CompletedLessons {
		if r.TopicID == "" || !r.Date.IsValid() {
			continue
		}
		if last[key{r.TopicID, r.Date}] != i {
			continue
		}
		r.Score = clampScore(r.Score)
		lessons = append(lessons, r)
	}
	out.CompletedLessons = lessons
	return out
}

func clampScore(s int) int {
	return min(max(s, 0), 100)
}
