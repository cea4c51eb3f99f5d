package welcome

import (
	"strings"
	"time"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/ui/components"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const maxLearnerLen = 32

const mascotArt = `     ╭─────────╮
   ╭─┤  ◉   ◉  ├─╮
   │ │    ▽    │ │
   ╰─┤  ┌───┐  ├─╯
     │  │ $ │  │
     ╰──┴───┴──╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"$", "¢"}

type tickMsg time.Time

// StartFunc builds the first screen for a learner.
type StartFunc func(learnerID string) screen.Screen

// WelcomeScreen shows a splash animation, then asks who is learning.
type WelcomeScreen struct {
	start        StartFunc
	input        components.TextInput
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen prefilled with learnerID. Confirming the name
// replaces this screen with the one start returns.
func New(learnerID string, start StartFunc) *WelcomeScreen {
	in := components.NewTextInput("your name", learnerID, maxLearnerLen)
	in.Allowed = validLearnerRune
	return &WelcomeScreen{
		start: start,
		input: in,
	}
}

func validLearnerRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.'
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.input.Init(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key during the animation skips it.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		if msg.String() == "enter" {
			return w, w.transition()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	name := w.input.Value()
	if name == "" {
		w.input.SetError("please enter a name")
		return nil
	}
	w.transitioned = true
	next := w.start(name)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = s1 + "  " + lines[1] + "  " + s2
		}
		if len(lines) > 4 {
			lines[4] = s2 + "  " + lines[4] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Build your money smarts, one quiz a day."))
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Who's learning today?"),
			w.input.View(),
			"",
			theme.Hint.Render("press enter to continue"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
