// Package achievements shows the badges a learner has earned and the ones
// still locked.
package achievements

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/badges"
	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/store"
	"github.com/abhisek/literacyhub/internal/ui/layout"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

type profileLoadedMsg struct {
	Profile ledger.Profile
	Err     error
}

// AchievementsScreen lists badges by kind.
type AchievementsScreen struct {
	profiles  store.ProfileStore
	learnerID string

	earned       map[string]bool
	streak       int
	selectedKind int // index into badges.AllKinds
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New creates an AchievementsScreen for learnerID.
func New(profiles store.ProfileStore, learnerID string) *AchievementsScreen {
	return &AchievementsScreen{
		profiles:  profiles,
		learnerID: learnerID,
		earned:    make(map[string]bool),
	}
}

func (s *AchievementsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := s.profiles.LoadProfile(context.Background(), s.learnerID)
		if err != nil {
			return profileLoadedMsg{Err: err}
		}
		if p == nil {
			return profileLoadedMsg{}
		}
		return profileLoadedMsg{Profile: *p}
	}
}

func (s *AchievementsScreen) Title() string {
	return "Achievements"
}

func (s *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch kind"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			for _, b := range badges.Earned(msg.Profile) {
				s.earned[b.ID] = true
			}
			s.streak = msg.Profile.StreakCount
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		kinds := badges.AllKinds()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.selectedKind = (s.selectedKind + 1) % len(kinds)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedKind = (s.selectedKind - 1 + len(kinds)) % len(kinds)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *AchievementsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading badges...")
	}

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d badges\n", len(s.earned), len(badges.All()))))
	b.WriteString("\n")

	kinds := badges.AllKinds()
	var tabs []string
	for i, k := range kinds {
		label := fmt.Sprintf("%s %s (%d)", k.Icon(), k.DisplayName(), s.countEarned(k))
		if i == s.selectedKind {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.filtered()
	maxVisible := max(height-12, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(list))

	for _, bd := range list[start:end] {
		var line string
		var style lipgloss.Style
		if s.earned[bd.ID] {
			line = fmt.Sprintf("%s %-22s %-10s %s", bd.Icon(), bd.Title, bd.Rarity.DisplayName(), bd.Description)
			style = lipgloss.NewStyle().Foreground(rarityColor(bd.Rarity))
		} else {
			line = fmt.Sprintf("🔒 %-22s %-10s %s", bd.Title, bd.Rarity.DisplayName(), bd.Description)
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(list) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("... %d more", len(list)-end)))
	}

	if kinds[s.selectedKind] == badges.KindStreak {
		if next := badges.NextStreakMilestone(s.streak); next > 0 {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.Accent).Render(
				fmt.Sprintf("%s to go until the next streak badge", layout.StreakLabel(next-s.streak))))
		}
	}

	return b.String()
}

func (s *AchievementsScreen) filtered() []badges.Badge {
	kind := badges.AllKinds()[s.selectedKind]
	var out []badges.Badge
	for _, b := range badges.All() {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

func (s *AchievementsScreen) countEarned(k badges.Kind) int {
	n := 0
	for _, b := range badges.All() {
		if b.Kind == k && s.earned[b.ID] {
			n++
		}
	}
	return n
}

func rarityColor(r badges.Rarity) color.Color {
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
