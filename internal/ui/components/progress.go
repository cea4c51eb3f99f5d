package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/ui/theme"
)

var (
	barFilled = lipgloss.NewStyle().Foreground(theme.Primary)
	barEmpty  = lipgloss.NewStyle().Foreground(theme.Border)
)

// ProgressBar is a fixed-width bar for a fraction in [0, 1]; values outside
// the range are clamped.
type ProgressBar struct {
	Label       string
	Fraction    float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar.
func NewProgressBar(label string, fraction float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Fraction: fraction, ShowPercent: showPercent, Width: width}
}

// View renders the bar.
func (p ProgressBar) View() string {
	f := min(max(p.Fraction, 0), 1)

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	var suffix string
	if p.ShowPercent {
		suffix = fmt.Sprintf(" %3d%%", int(math.Round(f*100)))
	}

	cells := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(math.Round(float64(cells) * f))
	b.WriteString(barFilled.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmpty.Render(strings.Repeat("░", cells-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
