package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/ui/components"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

func renderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderQuestion renders the active question with a progress line.
func (s *QuizScreen) renderQuestion(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder

	info := fmt.Sprintf("Question %d of %d", s.index+1, s.total)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info))
	b.WriteString("  ")
	b.WriteString(modeBadge(s.mode))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(s.index)/float64(max(s.total, 1)), false, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.mc.View()))

	if s.hint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.hint))
	}

	action := "Next question"
	if s.index == s.total-1 {
		action = "Submit quiz"
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Enter: " + action))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
