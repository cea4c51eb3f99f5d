package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/catalog"
	"github.com/abhisek/literacyhub/internal/ledger"
	qz "github.com/abhisek/literacyhub/internal/quiz"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/ui/components"
	"github.com/abhisek/literacyhub/internal/ui/layout"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// LessonScreen shows a topic's teaching content before its quiz, and again
// with the error when the quiz could not be generated.
type LessonScreen struct {
	engine *qz.Engine
	topic  catalog.Topic
	mode   ledger.Mode
	scroll int
	failed string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// NewLesson creates a LessonScreen for a topic the engine has selected.
func NewLesson(engine *qz.Engine, topic catalog.Topic, mode ledger.Mode) *LessonScreen {
	return &LessonScreen{engine: engine, topic: topic, mode: mode}
}

// lessonAfterFailure returns to the lesson with a generation error shown
// above the content.
func lessonAfterFailure(engine *qz.Engine, topic catalog.Topic, mode ledger.Mode, msg string) *LessonScreen {
	return &LessonScreen{engine: engine, topic: topic, mode: mode, failed: msg}
}

func (l *LessonScreen) Init() tea.Cmd { return nil }
func (l *LessonScreen) Title() string { return l.topic.Title }

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	action := "Take the quiz"
	if l.failed != "" {
		action = "Try again"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: action},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back to topics"},
	}
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	key := kmsg.String()
	if l.failed != "" && (key == "r" || key == "R") {
		key = "enter"
	}
	switch key {
	case "enter":
		next := New(l.engine, l.topic, l.mode)
		return l, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "esc":
		l.engine.ReturnToTopics()
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if l.scroll > 0 {
			l.scroll--
		}
	case "down", "j":
		l.scroll++
	}
	return l, nil
}

func (l *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	t := l.topic

	var b strings.Builder
	b.WriteString(theme.Selected.Render(t.Title))
	b.WriteString("  ")
	b.WriteString(modeBadge(l.mode))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %d questions · up to %d pts", t.Difficulty, t.QuestionCount, t.Points)))
	b.WriteString("\n\n")

	if t.Description != "" {
		b.WriteString(theme.Hint.Width(cw).Render(t.Description))
		b.WriteString("\n\n")
	}

	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(strings.TrimSpace(t.Content))
	lines := strings.Split(body, "\n")
	visible := max(height-10, 3)
	start := min(l.scroll, max(len(lines)-visible, 0))
	l.scroll = start
	end := min(start+visible, len(lines))
	b.WriteString(strings.Join(lines[start:end], "\n"))
	if end < len(lines) {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("... %d more lines", len(lines)-end)))
	}

	b.WriteString("\n\n")
	if l.failed != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(l.failed))
		b.WriteString("\n")
		b.WriteString(components.CallToAction("Try again"))
	} else {
		b.WriteString(components.CallToAction("Take the quiz"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func modeBadge(m ledger.Mode) string {
	if m == ledger.ModePractice {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("[practice]")
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render("[counts toward streak]")
}
