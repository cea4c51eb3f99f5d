// Package layout renders the frame around every screen: a header with the
// learner's points and streak, the screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// Smallest terminal the frame renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := theme.Body.Render(fmt.Sprintf(
		"Literacy Hub needs a %dx%d terminal.\n\nYours is %dx%d, please resize.",
		MinWidth, MinHeight, width, height,
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// RenderHeader puts the brand on the left, the screen title in the middle
// and the learner's points and streak on the right.
func RenderHeader(title string, points, streak int, width int) string {
	brand := theme.Brand.Render(" Literacy Hub")
	stats := theme.Points.Render(fmt.Sprintf("%d pts", points)) + "  " +
		theme.Streak.Render("🔥 "+StreakLabel(streak)) + " "
	mid := theme.Body.Render(title)

	inner := max(width-4, 0)
	leftW := max((inner-lipgloss.Width(mid))/2, lipgloss.Width(brand)+1)
	rightW := max(inner-leftW-lipgloss.Width(mid), lipgloss.Width(stats)+1)

	row := lipgloss.PlaceHorizontal(leftW, lipgloss.Left, brand) +
		mid +
		lipgloss.PlaceHorizontal(rightW, lipgloss.Right, stats)
	return theme.Bar.Width(width).Render(row)
}

// StreakLabel formats a streak as "1 day" or "N days".
func StreakLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// RenderFooter lists the active key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render(" · ")
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	return theme.Bar.Width(width).Render(" " + strings.Join(parts, sep))
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyH := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(bodyH).
		MaxHeight(bodyH).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
