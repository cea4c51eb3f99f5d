// Package topics is the home screen: the topic list with the learner's
// streak, points, daily challenge status and best scores.
package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"cloud.google.com/go/civil"

	"github.com/abhisek/literacyhub/internal/badges"
	"github.com/abhisek/literacyhub/internal/catalog"
	"github.com/abhisek/literacyhub/internal/ledger"
	qz "github.com/abhisek/literacyhub/internal/quiz"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/screens/achievements"
	"github.com/abhisek/literacyhub/internal/screens/history"
	quizscreen "github.com/abhisek/literacyhub/internal/screens/quiz"
	"github.com/abhisek/literacyhub/internal/store"
	"github.com/abhisek/literacyhub/internal/ui/components"
	"github.com/abhisek/literacyhub/internal/ui/layout"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// Deps are the collaborators the topic list and the screens it opens share.
type Deps struct {
	Engine   *qz.Engine
	Catalog  *catalog.Catalog
	Profiles store.ProfileStore
}

type profileLoadedMsg struct {
	Profile ledger.Profile
	Err     error
}

type topicSelectedMsg struct {
	Topic catalog.Topic
	Mode  ledger.Mode
	Err   error
}

// TopicsScreen lists the catalog.
type TopicsScreen struct {
	deps     Deps
	selected int
	profile  ledger.Profile
	loaded   bool
	busy     bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.Resumer = (*TopicsScreen)(nil)

// New creates a TopicsScreen.
func New(deps Deps) *TopicsScreen {
	return &TopicsScreen{deps: deps}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return s.loadProfile()
}

// Resume reloads the profile after a quiz or a sub-screen closes.
func (s *TopicsScreen) Resume() tea.Cmd {
	s.deps.Engine.ReturnToTopics()
	s.busy = false
	return s.loadProfile()
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "P", Description: "Practice"},
		{Key: "B", Description: "Badges"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *TopicsScreen) loadProfile() tea.Cmd {
	profiles, learner := s.deps.Profiles, s.deps.Engine.LearnerID()
	return func() tea.Msg {
		p, err := profiles.LoadProfile(context.Background(), learner)
		if err != nil {
			return profileLoadedMsg{Err: err}
		}
		if p == nil {
			return profileLoadedMsg{}
		}
		return profileLoadedMsg{Profile: ledger.Sanitize(*p)}
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = "Could not load your progress: " + msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.profile = msg.Profile
		stats := screen.StatsMsg{Points: msg.Profile.TotalPoints, Streak: msg.Profile.StreakCount}
		return s, func() tea.Msg { return stats }

	case topicSelectedMsg:
		return s.handleSelected(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TopicsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	topics := s.deps.Catalog.Topics()

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		s.notice = ""
	case "down", "j":
		if s.selected < len(topics)-1 {
			s.selected++
		}
		s.notice = ""
	case "enter":
		return s, s.selectTopic(topics[s.selected], ledger.ModeNormal)
	case "p", "P":
		return s, s.selectTopic(topics[s.selected], ledger.ModePractice)
	case "b", "B":
		scr := achievements.New(s.deps.Profiles, s.deps.Engine.LearnerID())
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	case "h", "H":
		scr := history.New(s.deps.Profiles, s.deps.Catalog, s.deps.Engine.LearnerID())
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	case "q", "Q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *TopicsScreen) selectTopic(t catalog.Topic, mode ledger.Mode) tea.Cmd {
	s.busy = true
	s.notice = ""
	engine := s.deps.Engine
	return func() tea.Msg {
		err := engine.SelectTopic(context.Background(), t.ID, mode)
		return topicSelectedMsg{Topic: t, Mode: mode, Err: err}
	}
}

func (s *TopicsScreen) handleSelected(msg topicSelectedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	switch {
	case msg.Err == nil:
		lesson := quizscreen.NewLesson(s.deps.Engine, msg.Topic, msg.Mode)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: lesson} }
	case errors.Is(msg.Err, qz.ErrAlreadyCompletedToday):
		s.notice = "You already completed this topic today. Press P to practice it without affecting your streak."
	case errors.Is(msg.Err, store.ErrStoreFailure):
		s.notice = "Could not check today's progress. Please try again."
	default:
		s.notice = msg.Err.Error()
	}
	return s, nil
}

func (s *TopicsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading your progress...")
	}

	cw := components.ContentWidth(width)
	today := s.deps.Engine.Today()
	best := ledger.BestScores(s.profile)

	var sections []string
	sections = append(sections, s.renderStatus(cw, today))

	for i, t := range s.deps.Catalog.Topics() {
		sections = append(sections, renderTopicCard(t, i == s.selected, best, ledger.CompletedOn(s.profile, t.ID, today), cw))
	}

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.errMsg))
	}
	if s.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render(s.notice))
	}
	if s.busy {
		sections = append(sections, theme.Hint.Render("Checking today's progress..."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *TopicsScreen) renderStatus(cw int, today civil.Date) string {
	var daily string
	if ledger.DailyChallengeDone(s.profile, today) {
		daily = theme.Correct.Render("✓ Daily challenge completed for today!")
	} else {
		daily = lipgloss.NewStyle().Foreground(theme.Accent).Render("★ Daily challenge: finish any quiz today to grow your streak")
	}

	stats := fmt.Sprintf("Streak: %s    Points: %d    Badges: %d",
		layout.StreakLabel(s.profile.StreakCount),
		s.profile.TotalPoints,
		len(badges.Earned(s.profile)))

	lines := []string{daily, theme.Body.Render(stats)}
	if next := badges.NextStreakMilestone(s.profile.StreakCount); next > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d more day(s) to the %d day streak badge", next-s.profile.StreakCount, next)))
	}
	return lipgloss.NewStyle().Width(cw).Padding(0, 2).Render(strings.Join(lines, "\n"))
}

func renderTopicCard(t catalog.Topic, selected bool, best map[string]int, doneToday bool, cw int) string {
	title := theme.Unselected.Render(t.Title)
	if selected {
		title = theme.Selected.Render("▸ " + t.Title)
	}
	if doneToday {
		title += "  " + theme.Correct.Render("✓ done today")
	}

	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %d questions · %d pts", t.Difficulty, t.QuestionCount, t.Points))

	lines := []string{title, meta}
	if selected && t.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Width(cw-4).Render(t.Description))
	}

	score, ok := best[t.ID]
	label := "Best"
	if !ok {
		label = "New "
	}
	lines = append(lines, components.NewProgressBar(label, float64(score)/100, true, cw-4).View())

	return components.Card(strings.Join(lines, "\n"), cw, components.CardBorder(selected))
}
