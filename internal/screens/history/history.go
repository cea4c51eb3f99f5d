// Package history lists a learner's completed lessons.
package history

import (
	"cmp"
	"context"
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/store"
	"github.com/abhisek/literacyhub/internal/ui/layout"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// TopicTitles resolves a topic ID to its title. *catalog.Catalog
// satisfies it.
type TopicTitles interface {
	Title(id string) string
}

type historyLoadedMsg struct {
	Records []ledger.CompletionRecord
	Streak  int
	Points  int
	Err     error
}

// HistoryScreen displays past completions, newest first.
type HistoryScreen struct {
	profiles  store.ProfileStore
	titles    TopicTitles
	learnerID string

	records  []ledger.CompletionRecord
	streak   int
	points   int
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for learnerID.
func New(profiles store.ProfileStore, titles TopicTitles, learnerID string) *HistoryScreen {
	return &HistoryScreen{
		profiles:  profiles,
		titles:    titles,
		learnerID: learnerID,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := s.profiles.LoadProfile(context.Background(), s.learnerID)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if p == nil {
			return historyLoadedMsg{}
		}
		return historyLoadedMsg{
			Records: newestFirst(p.CompletedLessons),
			Streak:  p.StreakCount,
			Points:  p.TotalPoints,
		}
	}
}

// newestFirst orders records by date descending, then by topic ID.
func newestFirst(records []ledger.CompletionRecord) []ledger.CompletionRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b ledger.CompletionRecord) int {
		switch {
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
		return cmp.Compare(a.TopicID, b.TopicID)
	})
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
			s.streak = msg.Streak
			s.points = msg.Points
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons completed yet. Pick a topic to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"%d lessons · %d pts · streak %s", len(s.records), s.points, layout.StreakLabel(s.streak))))
	b.WriteString("\n\n")

	maxVisible := max(height-8, 3)
	start := 0
	if s.selected >= maxVisible {
		start = s.selected - maxVisible + 1
	}
	end := min(start+maxVisible, len(s.records))

	for i := start; i < end; i++ {
		rec := s.records[i]
		date := rec.Date.In(time.UTC).Format("Jan 02, 2006")
		line := fmt.Sprintf("%-14s %-36s %3d%%", date, truncate(s.titles.Title(rec.TopicID), 36), rec.Score)

		style := lipgloss.NewStyle().Foreground(scoreColor(rec.Score))
		if i == s.selected {
			line = "▸ " + line
			style = style.Bold(true)
		} else {
			line = "  " + line
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(s.records) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("... %d more", len(s.records)-end)))
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func scoreColor(score int) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
