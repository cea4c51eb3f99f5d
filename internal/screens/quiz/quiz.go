// Package quiz holds the screens that walk a learner through one topic:
// the lesson, the quiz itself and its results.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
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

type phase int

const (
	phaseGenerating phase = iota
	phaseAnswering
	phaseSubmitting
)

// QuizScreen generates the quiz, collects answers and submits them.
type QuizScreen struct {
	engine  *qz.Engine
	topic   catalog.Topic
	mode    ledger.Mode
	spinner spinner.Model

	phase       phase
	mc          components.MultiChoice
	index       int
	total       int
	hint        string
	confirmQuit bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. Its Init starts generation, so the engine must
// be viewing topic.
func New(engine *qz.Engine, topic catalog.Topic, mode ledger.Mode) *QuizScreen {
	return &QuizScreen{
		engine: engine,
		topic:  topic,
		mode:   mode,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.generate())
}

func (s *QuizScreen) Title() string {
	return s.topic.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseAnswering:
		return []layout.KeyHint{
			{Key: "1-6", Description: "Pick"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

func (s *QuizScreen) generate() tea.Cmd {
	s.phase = phaseGenerating
	engine := s.engine
	return func() tea.Msg {
		return generatedMsg{Err: engine.Generate(context.Background())}
	}
}

func (s *QuizScreen) submit() tea.Cmd {
	s.phase = phaseSubmitting
	engine := s.engine
	return func() tea.Msg {
		out, err := engine.Submit(context.Background())
		return submittedMsg{Outcome: out, Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.phase != phaseGenerating && s.phase != phaseSubmitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case generatedMsg:
		return s.handleGenerated(msg)

	case submittedMsg:
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, qz.ErrDiscarded):
		return s, nil
	case msg.Err != nil:
		// The engine is back on the topic, so the lesson shows it again.
		lesson := lessonAfterFailure(s.engine, s.topic, s.mode, generationMessage(msg.Err))
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: lesson} }
	}
	s.phase = phaseAnswering
	s.loadQuestion()
	return s, nil
}

func generationMessage(err error) string {
	var gerr *qz.GenerationError
	if errors.As(err, &gerr) {
		return "We couldn't build a quiz for this topic right now. " + gerr.Err.Error()
	}
	return err.Error()
}

// loadQuestion refreshes the selector from the engine's current question.
func (s *QuizScreen) loadQuestion() {
	sess := s.engine.Session()
	if sess == nil {
		return
	}
	q, ok := sess.CurrentQuestion()
	if !ok {
		return
	}
	s.index = sess.CurrentIndex
	s.total = len(sess.Questions)
	s.mc = components.NewMultiChoice(q.Prompt, q.Options, sess.CurrentAnswer())
	s.hint = ""
}

func (s *QuizScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, qz.ErrDiscarded) {
		return s, nil
	}
	if msg.Outcome == nil {
		s.phase = phaseAnswering
		s.hint = msg.Err.Error()
		return s, nil
	}
	results := NewResults(s.engine, msg.Outcome, msg.Err)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} }
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.leave()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseGenerating:
		if key == "esc" {
			return s, s.leave()
		}
	case phaseAnswering:
		switch key {
		case "esc":
			s.confirmQuit = true
			return s, nil
		case "enter":
			return s.confirm()
		}
		s.mc, _ = s.mc.Update(msg)
		if s.mc.Chosen >= 0 {
			if err := s.engine.SelectAnswer(s.mc.Chosen); err != nil {
				s.hint = err.Error()
			}
		}
	}
	return s, nil
}

// confirm records the highlighted answer and moves on, submitting after
// the last question.
func (s *QuizScreen) confirm() (screen.Screen, tea.Cmd) {
	choice := s.mc.Chosen
	if choice < 0 {
		choice = s.mc.Cursor
	}
	if err := s.engine.SelectAnswer(choice); err != nil {
		s.hint = err.Error()
		return s, nil
	}
	if err := s.engine.Advance(); err != nil {
		s.hint = err.Error()
		return s, nil
	}
	if s.engine.State() == qz.StateSubmitting {
		return s, tea.Batch(s.spinner.Tick, s.submit())
	}
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) leave() tea.Cmd {
	s.engine.ReturnToTopics()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderCentered(width, height,
			theme.Body.Render("Leave this quiz? Your answers will be lost.")+"\n\n"+
				theme.Hint.Render("Y to leave · N to keep going"))
	}

	switch s.phase {
	case phaseGenerating:
		return renderCentered(width, height,
			s.spinner.View()+" "+theme.Body.Render(fmt.Sprintf("Preparing your %s quiz...", s.topic.Title)))
	case phaseSubmitting:
		return renderCentered(width, height,
			s.spinner.View()+" "+theme.Body.Render("Saving your progress..."))
	}
	return s.renderQuestion(width, height)
}
