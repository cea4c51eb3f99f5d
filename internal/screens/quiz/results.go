package quiz

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/badges"
	"github.com/abhisek/literacyhub/internal/ledger"
	qz "github.com/abhisek/literacyhub/internal/quiz"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/ui/components"
	"github.com/abhisek/literacyhub/internal/ui/layout"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// ResultsScreen shows a submitted quiz's score, the profile change and a
// question-by-question review.
type ResultsScreen struct {
	engine    *qz.Engine
	outcome   *qz.Outcome
	saveErr   error
	newBadges []badges.Badge
	scroll    int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// NewResults creates a ResultsScreen. saveErr is the error Submit returned
// alongside the outcome, if any.
func NewResults(engine *qz.Engine, outcome *qz.Outcome, saveErr error) *ResultsScreen {
	r := &ResultsScreen{engine: engine, outcome: outcome, saveErr: saveErr}
	if outcome.Persisted && outcome.Previous != nil && outcome.Profile != nil {
		r.newBadges = badges.NewlyEarned(*outcome.Previous, *outcome.Profile)
	}
	return r
}

func (r *ResultsScreen) Init() tea.Cmd {
	if r.outcome.Profile == nil {
		return nil
	}
	stats := screen.StatsMsg{Points: r.outcome.Profile.TotalPoints, Streak: r.outcome.Profile.StreakCount}
	return func() tea.Msg { return stats }
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Retry"},
		{Key: "↑↓", Description: "Review"},
		{Key: "Enter", Description: "Back to topics"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		r.engine.ReturnToTopics()
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	case "r", "R":
		if err := r.engine.Retry(); err != nil {
			return r, nil
		}
		next := New(r.engine, r.outcome.Topic, r.outcome.Mode)
		return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "up", "k":
		if r.scroll > 0 {
			r.scroll--
		}
	case "down", "j":
		if r.scroll < len(r.outcome.Questions)-1 {
			r.scroll++
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	out := r.outcome
	res := out.Result
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(scoreColor(res.DisplayPercent())).Bold(true).
		Render(fmt.Sprintf("%d%%  %s", res.DisplayPercent(), cheer(res.DisplayPercent()))))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d of %d correct", res.CorrectCount, res.Total)))
	b.WriteString("\n\n")

	b.WriteString(r.renderProgress())
	b.WriteString("\n")

	if len(r.newBadges) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("New badges"))
		b.WriteString("\n")
		for _, bd := range r.newBadges {
			line := fmt.Sprintf("%s %s (%s)  %s", bd.Icon(), bd.Title, bd.Rarity.DisplayName(), bd.Description)
			b.WriteString(lipgloss.NewStyle().Foreground(RarityColor(bd.Rarity)).Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n")
	b.WriteString(r.renderReview(cw, max(height-16, 4)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (r *ResultsScreen) renderProgress() string {
	out := r.outcome
	switch {
	case r.saveErr != nil:
		msg := "Your score is correct, but points and streak may not have been saved. Please retry."
		var serr *qz.StoreError
		if errors.As(r.saveErr, &serr) && serr.Op == qz.OpLoad {
			msg = "Your score is correct, but we couldn't read your profile to save it. Please retry."
		}
		return lipgloss.NewStyle().Foreground(theme.Error).Render(msg)
	case out.Mode == ledger.ModePractice:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("Practice round: %d pts would have been earned. Your streak and points are unchanged.", out.Result.PointsEarned))
	case out.Persisted:
		line := fmt.Sprintf("+%d pts · total %d · streak %s", out.Result.PointsEarned, out.Profile.TotalPoints, layout.StreakLabel(out.StreakCount()))
		if out.FirstToday {
			line += "  " + theme.Correct.Render("daily challenge complete!")
		}
		return theme.Correct.Render(line)
	}
	return ""
}

func (r *ResultsScreen) renderReview(cw, maxLines int) string {
	out := r.outcome
	var lines []string
	for i := r.scroll; i < len(out.Questions); i++ {
		q := out.Questions[i]
		ans := out.Answers[i]

		mark := theme.Incorrect.Render("✗")
		if ans == q.CorrectIndex {
			mark = theme.Correct.Render("✓")
		}
		block := []string{
			mark + " " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw-2).Render(fmt.Sprintf("%d. %s", i+1, q.Prompt)),
			strings.TrimRight(components.ReviewView(q.Options, q.CorrectIndex, ans), "\n"),
		}
		if q.Explanation != "" {
			block = append(block, theme.Hint.Width(cw).Render(q.Explanation))
		}
		text := strings.Join(block, "\n")
		if len(lines) > 0 && len(lines)+strings.Count(text, "\n")+1 > maxLines {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("... %d more (↓ to scroll)", len(out.Questions)-i)))
			break
		}
		lines = append(lines, strings.Split(text, "\n")...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func cheer(percent int) string {
	switch {
	case percent == 100:
		return "Perfect score!"
	case percent >= 80:
		return "Great work!"
	case percent >= 50:
		return "Nice effort!"
	default:
		return "Keep practicing!"
	}
}

func scoreColor(percent int) color.Color {
	switch {
	case percent >= 80:
		return theme.Success
	case percent >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}

// RarityColor returns the theme color for a badge rarity.
func RarityColor(r badges.Rarity) color.Color {
	switch r {
	case badges.RarityRare:
		return theme.Secondary
	case badges.RarityEpic:
		return theme.Primary
	case badges.RarityLegendary:
		return theme.Legendary
	default:
		return theme.Text
	}
}
