// Package theme holds the palette and the lipgloss styles shared by screens.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: money greens with an amber accent for points and streaks.
var (
	Primary   = lipgloss.Color("#10B981")
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Ink       = lipgloss.Color("#0F172A")
	Surface   = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
	Legendary = lipgloss.Color("#EAB308")
)

var (
	Body = lipgloss.NewStyle().Foreground(Text)

	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Brand = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Points = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	Streak = lipgloss.NewStyle().Foreground(Accent)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Unselected = lipgloss.NewStyle().Foreground(Text)

	Correct = lipgloss.NewStyle().Foreground(Success).Bold(true)

	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Bar is the rounded, surface-filled box used for the header and footer.
var Bar = lipgloss.NewStyle().
	Background(Surface).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border)

// CallToAction is the highlighted pill for a screen's primary action.
var CallToAction = lipgloss.NewStyle().
	Background(Primary).
	Foreground(Ink).
	Bold(true).
	Padding(0, 2)
