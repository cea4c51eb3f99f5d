package achievements

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/store/memstore"
)

func load(t *testing.T, s *AchievementsScreen) {
	t.Helper()
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("screen did not load")
	}
}

func TestAchievements_EarnedAndLocked(t *testing.T) {
	ms := memstore.New()
	ms.Put("ada", ledger.Profile{StreakCount: 4, TotalPoints: 150})

	s := New(ms, "ada")
	load(t, s)

	view := s.View(120, 40)
	if !strings.Contains(view, "Warming Up") {
		t.Error("expected the 3-day streak badge")
	}
	if !strings.Contains(view, "🔒") {
		t.Error("expected locked badges on the streak tab")
	}
	if !strings.Contains(view, "3 days to go") {
		t.Error("expected the next milestone hint (7 - 4 = 3 days)")
	}
	if !strings.Contains(view, "Unlocked: 2 of") {
		t.Error("expected 2 unlocked badges (streak 3, points 100)")
	}
}

func TestAchievements_TabCycles(t *testing.T) {
	ms := memstore.New()
	day := civil.Date{Year: 2026, Month: time.March, Day: 14}
	ms.Put("ada", ledger.Profile{
		StreakCount:      1,
		CompletedLessons: []ledger.CompletionRecord{{TopicID: "savings", Date: day, Score: 100}},
	})

	s := New(ms, "ada")
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.selectedKind != 2 {
		t.Fatalf("selectedKind = %d, want 2", s.selectedKind)
	}
	if !strings.Contains(s.View(120, 40), "Quiz Champion") {
		t.Error("score tab should show Quiz Champion")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.selectedKind != 0 {
		t.Errorf("selectedKind = %d, want 0 after wrapping", s.selectedKind)
	}
}

func TestAchievements_NoProfile(t *testing.T) {
	s := New(memstore.New(), "newcomer")
	load(t, s)

	if len(s.earned) != 0 {
		t.Errorf("earned = %v, want none", s.earned)
	}
	if !strings.Contains(s.View(120, 40), "Unlocked: 0 of") {
		t.Error("expected zero unlocked badges")
	}
}

func TestAchievements_LoadError(t *testing.T) {
	ms := memstore.New()
	ms.LoadErr = errors.New("database is locked")

	s := New(ms, "ada")
	load(t, s)

	if !strings.Contains(s.View(120, 40), "database is locked") {
		t.Error("expected the load error in the view")
	}
}

func TestAchievements_EscPops(t *testing.T) {
	s := New(memstore.New(), "ada")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
