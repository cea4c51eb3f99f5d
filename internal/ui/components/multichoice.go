package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/literacyhub/internal/ui/theme"
)

// OptionLabels are the letters shown next to answer options.
var OptionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. Cursor is the highlighted
// option; Chosen is the recorded answer or -1.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int
}

// NewMultiChoice creates a selector with the cursor on chosen, or on the
// first option when chosen is -1.
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Cursor:   cursor,
		Chosen:   chosen,
	}
}

// Update moves the cursor with arrows and picks an option by number or
// letter. Picking an option also moves the cursor to it.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "space":
		m.Chosen = m.Cursor
		return m, nil
	}

	if i, ok := OptionIndex(key, len(m.Options)); ok {
		m.Cursor = i
		m.Chosen = i
	}
	return m, nil
}

// OptionIndex maps "1".."6" or "a".."f" to an option index below n.
func OptionIndex(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'z':
		i = int(c - 'a')
	case c >= 'A' && c <= 'Z':
		i = int(c - 'A')
	default:
		return 0, false
	}
	if i >= n || i >= len(OptionLabels) {
		return 0, false
	}
	return i, true
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabels[i], opt)

		switch {
		case i == m.Chosen:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(line))
		case i == m.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ReviewView renders the options with the correct answer and the
// learner's answer marked.
func ReviewView(options []string, correct, chosen int) string {
	var b strings.Builder
	for i, opt := range options {
		line := fmt.Sprintf("   %s)  %s", OptionLabels[i], opt)
		switch {
		case i == correct:
			b.WriteString(theme.Correct.Render("✓" + line))
		case i == chosen:
			b.WriteString(theme.Incorrect.Render("✗" + line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
