package badges

// Kind identifies the category of achievement.
type Kind string

const (
	KindStreak Kind = "streak"
	KindPoints Kind = "points"
	KindScore  Kind = "score"
	KindTopics Kind = "topics"
)

// AllKinds returns all kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindStreak, KindPoints, KindScore, KindTopics}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindStreak:
		return "Streak"
	case KindPoints:
		return "Points"
	case KindScore:
		return "Score"
	case KindTopics:
		return "Topics"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindStreak:
		return "🔥"
	case KindPoints:
		return "💰"
	case KindScore:
		return "🏆"
	case KindTopics:
		return "📚"
	default:
		return "✦"
	}
}
