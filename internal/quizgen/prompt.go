package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a personal finance tutor writing a short multiple-choice quiz for an adult learner.

Rules:
- Base every question only on the lesson text provided. Do not test facts the lesson does not teach.
- Each question has exactly 4 options and exactly one correct answer.
- Distractors should reflect common misconceptions about money, not obviously silly values.
- Vary the position of the correct answer across questions.
- Keep prompts under 300 characters and options short.
- Do not repeat a question or ask the same fact twice.
- The explanation states in one or two sentences why the correct option is right.
- Use plain text. No markdown, no numbering in the prompt.`

// buildUserMessage constructs the user message for one topic.
func buildUserMessage(title, content string, count int, maxContent int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lesson title: %s\n", title)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	b.WriteString("\nLesson text:\n")
	b.WriteString(truncateContent(strings.TrimSpace(content), maxContent))

	return b.String()
}

// truncateContent cuts s to at most max bytes on a word boundary.
func truncateContent(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := strings.LastIndexAny(s[:max], " \n\t")
	if cut <= 0 {
		cut = max
	}
	return strings.TrimSpace(s[:cut]) + " ..."
}
