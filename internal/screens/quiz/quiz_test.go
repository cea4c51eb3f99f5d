package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/literacyhub/internal/catalog"
	"github.com/abhisek/literacyhub/internal/ledger"
	qz "github.com/abhisek/literacyhub/internal/quiz"
	"github.com/abhisek/literacyhub/internal/quizgen"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/store/memstore"
)

const learner = "ada"

type stubGenerator struct {
	qs  []quizgen.Question
	err error
}

func (g *stubGenerator) Generate(context.Context, string, string) ([]quizgen.Question, error) {
	return g.qs, g.err
}

func twoQuestions() []quizgen.Question {
	return []quizgen.Question{
		{Prompt: "What is a budget?", Options: []string{"A plan for money", "A loan"}, CorrectIndex: 0, Explanation: "A budget plans spending."},
		{Prompt: "What is interest?", Options: []string{"A fee", "The cost of borrowing money"}, CorrectIndex: 1},
	}
}

type fixture struct {
	engine *qz.Engine
	store  *memstore.Store
	gen    *stubGenerator
	topic  catalog.Topic
}

func newFixture(t *testing.T, mode ledger.Mode) *fixture {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	topic, _ := cat.Get("budgeting")

	f := &fixture{store: memstore.New(), gen: &stubGenerator{qs: twoQuestions()}, topic: topic}
	f.engine = qz.New(cat, f.gen, f.store, learner,
		qz.WithClock(func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) }),
		qz.WithLocation(time.UTC),
		qz.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err := f.engine.SelectTopic(context.Background(), "budgeting", mode); err != nil {
		t.Fatalf("SelectTopic: %v", err)
	}
	return f
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// startQuiz runs generation synchronously and feeds the result back.
func startQuiz(t *testing.T, f *fixture, mode ledger.Mode) *QuizScreen {
	t.Helper()
	s := New(f.engine, f.topic, mode)
	if _, cmd := s.Update(s.generate()()); cmd != nil {
		t.Fatalf("generation did not start the quiz: %#v", cmd())
	}
	if s.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering", s.phase)
	}
	return s
}

// finish answers every question with the given options and submits.
func finish(t *testing.T, s *QuizScreen, answers ...rune) *ResultsScreen {
	t.Helper()
	for _, a := range answers {
		s.Update(key(a))
		s.Update(enter)
	}
	if got := s.engine.State(); got != qz.StateSubmitting {
		t.Fatalf("engine state = %v, want submitting", got)
	}
	_, cmd := s.Update(s.submit()())
	if cmd == nil {
		t.Fatal("expected a navigation command after submit")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	results, ok := msg.Screen.(*ResultsScreen)
	if !ok {
		t.Fatalf("expected *ResultsScreen, got %T", msg.Screen)
	}
	return results
}

func TestLesson_EnterStartsQuiz(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	l := NewLesson(f.engine, f.topic, ledger.ModeNormal)

	if !strings.Contains(l.View(100, 30), "Budgeting 101") {
		t.Error("lesson view should show the topic title")
	}

	_, cmd := l.Update(enter)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*QuizScreen); !ok {
		t.Errorf("expected *QuizScreen, got %T", msg.Screen)
	}
}

func TestLesson_EscReturnsToTopics(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	l := NewLesson(f.engine, f.topic, ledger.ModeNormal)

	_, cmd := l.Update(esc)
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg")
	}
	if got := f.engine.State(); got != qz.StateIdle {
		t.Errorf("engine state = %v, want idle", got)
	}
}

func TestQuiz_NormalCompletion(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	s := startQuiz(t, f, ledger.ModeNormal)

	if !strings.Contains(s.View(100, 30), "What is a budget?") {
		t.Error("first question not shown")
	}

	results := finish(t, s, '1', '2')

	view := results.View(100, 40)
	for _, want := range []string{"100%", "Perfect score!", "2 of 2 correct", "+100 pts", "daily challenge complete!"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}

	p, _ := f.store.LoadProfile(context.Background(), learner)
	if p == nil || p.TotalPoints != 100 || p.StreakCount != 1 {
		t.Errorf("profile = %+v, want 100 points and streak 1", p)
	}
}

func TestQuiz_ResultsReportStats(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	results := finish(t, startQuiz(t, f, ledger.ModeNormal), '1', '1')

	cmd := results.Init()
	if cmd == nil {
		t.Fatal("expected a stats command")
	}
	stats, ok := cmd().(screen.StatsMsg)
	if !ok {
		t.Fatalf("expected StatsMsg, got %T", cmd())
	}
	if stats.Points != 50 || stats.Streak != 1 {
		t.Errorf("stats = %+v, want 50 points and streak 1", stats)
	}
}

func TestQuiz_PracticeLeavesProfile(t *testing.T) {
	f := newFixture(t, ledger.ModePractice)
	results := finish(t, startQuiz(t, f, ledger.ModePractice), '1', '1')

	if !strings.Contains(results.View(100, 40), "Practice round") {
		t.Error("results should explain practice mode")
	}
	if results.Init() != nil {
		t.Error("practice results should not update header stats")
	}
	if f.store.Updates != 0 {
		t.Errorf("store updates = %d, want 0", f.store.Updates)
	}
}

func TestQuiz_SaveFailureKeepsScore(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	f.store.UpdateErr = errors.New("disk full")
	results := finish(t, startQuiz(t, f, ledger.ModeNormal), '1', '2')

	view := results.View(100, 40)
	if !strings.Contains(view, "100%") {
		t.Error("score should still be shown")
	}
	if !strings.Contains(view, "may not have been saved") {
		t.Error("expected the persistence warning")
	}
}

func TestQuiz_EnterWithoutPickUsesCursor(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	s := startQuiz(t, f, ledger.ModeNormal)

	s.Update(down)
	s.Update(enter)

	sess := f.engine.Session()
	if sess.Answers[0] != 1 {
		t.Errorf("Answers[0] = %d, want 1 (cursor position)", sess.Answers[0])
	}
	if sess.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", sess.CurrentIndex)
	}
}

func TestQuiz_GenerationFailureShowsLessonAgain(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	f.gen.err = errors.New("provider down")

	s := New(f.engine, f.topic, ledger.ModeNormal)
	_, cmd := s.Update(s.generate()())
	if cmd == nil {
		t.Fatal("expected a screen change after a failed generation")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	lesson, ok := msg.Screen.(*LessonScreen)
	if !ok {
		t.Fatalf("expected *LessonScreen, got %T", msg.Screen)
	}
	if got := f.engine.State(); got != qz.StateTopicViewing {
		t.Errorf("engine state = %v, want topic viewing", got)
	}

	view := lesson.View(100, 40)
	for _, want := range []string{"couldn't build a quiz", "Budgeting 101", "A budget is a plan"} {
		if !strings.Contains(view, want) {
			t.Errorf("lesson view missing %q", want)
		}
	}
	if hints := lesson.KeyHints(); hints[0].Description != "Try again" {
		t.Errorf("first hint = %q, want Try again", hints[0].Description)
	}

	f.gen.err = nil
	_, cmd = lesson.Update(key('r'))
	msg, ok = cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg on retry, got %T", cmd())
	}
	retry, ok := msg.Screen.(*QuizScreen)
	if !ok {
		t.Fatalf("expected *QuizScreen, got %T", msg.Screen)
	}
	retry.Update(retry.generate()())
	if retry.phase != phaseAnswering {
		t.Errorf("phase = %v, want answering after retry", retry.phase)
	}
}

func TestLesson_RetryKeyOnlyAfterFailure(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	l := NewLesson(f.engine, f.topic, ledger.ModeNormal)

	if _, cmd := l.Update(key('r')); cmd != nil {
		t.Error("r should do nothing before a failure")
	}
}

func TestQuiz_QuitConfirm(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	s := startQuiz(t, f, ledger.ModeNormal)

	s.Update(esc)
	if !s.confirmQuit {
		t.Fatal("esc should ask for confirmation")
	}
	s.Update(key('n'))
	if s.confirmQuit {
		t.Fatal("n should cancel")
	}

	s.Update(esc)
	_, cmd := s.Update(key('y'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after confirming")
	}
	if got := f.engine.State(); got != qz.StateIdle {
		t.Errorf("engine state = %v, want idle", got)
	}
}

func TestResults_Retry(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	results := finish(t, startQuiz(t, f, ledger.ModeNormal), '2', '1')

	_, cmd := results.Update(key('r'))
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*QuizScreen); !ok {
		t.Errorf("expected *QuizScreen, got %T", msg.Screen)
	}
	if got := f.engine.State(); got != qz.StateTopicViewing {
		t.Errorf("engine state = %v, want topic-viewing", got)
	}
}

func TestResults_BackToTopics(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	results := finish(t, startQuiz(t, f, ledger.ModeNormal), '1', '1')

	_, cmd := results.Update(enter)
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if got := f.engine.State(); got != qz.StateIdle {
		t.Errorf("engine state = %v, want idle", got)
	}
}

func TestResults_NewBadges(t *testing.T) {
	f := newFixture(t, ledger.ModeNormal)
	results := finish(t, startQuiz(t, f, ledger.ModeNormal), '1', '2')

	if len(results.newBadges) == 0 {
		t.Fatal("a first perfect score should earn badges")
	}
	if !strings.Contains(results.View(100, 60), "New badges") {
		t.Error("results should list new badges")
	}
}
