package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up, capped at 72 columns.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int, border lipgloss.Style) string {
	return border.
		Border(lipgloss.RoundedBorder()).
		Width(cw).
		Padding(0, 2).
		Render(content)
}

// CardBorder returns the default card border style, highlighted when
// selected.
func CardBorder(selected bool) lipgloss.Style {
	if selected {
		return lipgloss.NewStyle().BorderForeground(theme.Primary)
	}
	return lipgloss.NewStyle().BorderForeground(theme.Border)
}

// CallToAction renders the highlighted primary action of a screen.
func CallToAction(label string) string {
	return theme.CallToAction.Render("▸ " + label)
}
