// Package badges derives achievements from a learner's profile. Badges are
// never stored; they are recomputed from streak, points and completion
// records whenever they are shown.
package badges

import (
	"fmt"

	"github.com/abhisek/literacyhub/internal/ledger"
)

// Badge is one achievement.
type Badge struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Rarity      Rarity
}

// Icon returns the badge's display icon.
func (b Badge) Icon() string { return b.Kind.Icon() }

var (
	// StreakMilestones are the day-streak lengths that award a badge.
	StreakMilestones = []int{3, 7, 14, 30}

	// PointMilestones are the point totals that award a badge.
	PointMilestones = []int{100, 500, 1000, 2500}
)

// Topic badge rules.
const (
	savingsTopic   = "savings"
	smartSaverMin  = 80
	explorerTopics = 3
)

var streakTitles = map[int]string{
	3:  "Warming Up",
	7:  "7 Day Streak Master",
	14: "Fortnight Focus",
	30: "Habit Legend",
}

var pointTitles = map[int]string{
	100:  "First Hundred",
	500:  "Point Collector",
	1000: "Financial Scholar",
	2500: "Money Maestro",
}

// Earned returns every badge p qualifies for, in display order: streak,
// points, score, then topics.
func Earned(p ledger.Profile) []Badge {
	var out []Badge

	// Streak badges reflect the current run, so they can be lost.
	for _, days := range StreakMilestones {
		if p.StreakCount >= days {
			out = append(out, streakBadge(days))
		}
	}

	for _, pts := range PointMilestones {
		if p.TotalPoints >= pts {
			out = append(out, pointsBadge(pts))
		}
	}

	best := ledger.BestScores(p)
	if hasPerfect(best) {
		out = append(out, perfectBadge())
	}
	if best[savingsTopic] >= smartSaverMin {
		out = append(out, smartSaverBadge())
	}
	if len(best) >= explorerTopics {
		out = append(out, explorerBadge())
	}
	return out
}

// NewlyEarned returns the badges after has that before did not.
func NewlyEarned(before, after ledger.Profile) []Badge {
	had := make(map[string]bool)
	for _, b := range Earned(before) {
		had[b.ID] = true
	}
	var out []Badge
	for _, b := range Earned(after) {
		if !had[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

// All returns every badge that can be earned, in the same order as Earned.
func All() []Badge {
	var out []Badge
	for _, days := range StreakMilestones {
		out = append(out, streakBadge(days))
	}
	for _, pts := range PointMilestones {
		out = append(out, pointsBadge(pts))
	}
	return append(out, perfectBadge(), smartSaverBadge(), explorerBadge())
}

// NextStreakMilestone returns the next streak milestone above current, or
// 0 once every milestone is reached.
func NextStreakMilestone(current int) int {
	for _, m := range StreakMilestones {
		if m > current {
			return m
		}
	}
	return 0
}

func streakBadge(days int) Badge {
	return Badge{
		ID:          fmt.Sprintf("streak-%d", days),
		Kind:        KindStreak,
		Title:       streakTitles[days],
		Description: fmt.Sprintf("Completed a lesson %d days in a row", days),
		Rarity:      StreakRarity(days),
	}
}

func pointsBadge(points int) Badge {
	return Badge{
		ID:          fmt.Sprintf("points-%d", points),
		Kind:        KindPoints,
		Title:       pointTitles[points],
		Description: fmt.Sprintf("Earned %d points", points),
		Rarity:      PointsRarity(points),
	}
}

func perfectBadge() Badge {
	return Badge{
		ID:          "score-perfect",
		Kind:        KindScore,
		Title:       "Quiz Champion",
		Description: "Scored 100% on a quiz",
		Rarity:      RarityRare,
	}
}

func smartSaverBadge() Badge {
	return Badge{
		ID:          "topic-smart-saver",
		Kind:        KindTopics,
		Title:       "Smart Saver",
		Description: fmt.Sprintf("Scored %d%% or more on Savings Strategy", smartSaverMin),
		Rarity:      RarityCommon,
	}
}

func explorerBadge() Badge {
	return Badge{
		ID:          "topic-explorer",
		Kind:        KindTopics,
		Title:       "Explorer",
		Description: fmt.Sprintf("Completed %d different topics", explorerTopics),
		Rarity:      RarityRare,
	}
}

func hasPerfect(best map[string]int) bool {
	for _, s := range best {
		if s == 100 {
			return true
		}
	}
	return false
}
