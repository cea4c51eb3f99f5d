// Package app is the root Bubble Tea model: a header with the learner's
// points and streak, the screen stack, and a footer of key hints.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/catalog"
	qz "github.com/abhisek/literacyhub/internal/quiz"
	"github.com/abhisek/literacyhub/internal/router"
	"github.com/abhisek/literacyhub/internal/screen"
	"github.com/abhisek/literacyhub/internal/screens/topics"
	"github.com/abhisek/literacyhub/internal/screens/welcome"
	"github.com/abhisek/literacyhub/internal/store"
	"github.com/abhisek/literacyhub/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	// LearnerID prefills the welcome prompt.
	LearnerID string

	// SkipWelcome opens the topic list for LearnerID directly.
	SkipWelcome bool

	Catalog  *catalog.Catalog
	Profiles store.ProfileStore

	// NewEngine builds the quiz engine once the learner is known.
	NewEngine func(learnerID string) *qz.Engine
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	points int
	streak int
}

// newAppModel creates an AppModel starting at the welcome screen, or at
// the topic list when opts.SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	start := func(learnerID string) screen.Screen {
		return topics.New(topics.Deps{
			Engine:   opts.NewEngine(learnerID),
			Catalog:  opts.Catalog,
			Profiles: opts.Profiles,
		})
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = start(opts.LearnerID)
	} else {
		first = welcome.New(opts.LearnerID, start)
	}
	return AppModel{router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatsMsg:
		m.points = msg.Points
		m.streak = msg.Streak
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.points, m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
