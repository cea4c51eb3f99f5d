package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/quizgen"
	"github.com/abhisek/literacyhub/internal/scoring"
	"github.com/abhisek/literacyhub/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate and take a quiz for a topic (no profile changes)",
	Long: `Generate a quiz for one topic and answer it on the command line.

This is a developer tool: nothing is written to the learner's profile. Useful
for checking question quality with the configured LLM provider.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Topic ID (required)")
	previewCmd.Flags().Int("count", 0, "Number of questions to generate (default: the topic's own count)")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topicID, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")

	d, err := loadDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.close()

	topic, ok := d.catalog.Get(topicID)
	if !ok {
		return fmt.Errorf("no topic %q (see `literacyhub topics`)", topicID)
	}
	if count < 1 {
		count = topic.QuestionCount
	}

	ctx := cmd.Context()
	gen, err := d.generator(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Topic: %s (%s, %d pts)\n", topic.Title, topic.Difficulty, topic.Points)
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	questions, err := gen.Generate(quizgen.WithQuestionCount(ctx, count), topic.Title, topic.Content)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	answers := answerQuiz(cmd.InOrStdin(), out, questions)
	res := scoring.Score(questions, answers, topic.Points)
	fmt.Fprintf(out, "── Summary: %d/%d correct, %d%%, %d pts (not saved) ──\n",
		res.CorrectCount, res.Total, res.DisplayPercent(), res.PointsEarned)
	return nil
}

// answerQuiz asks each question on out and reads a 1-based choice per line
// from in. Blank or invalid lines leave the question unanswered; closed
// input leaves the rest unanswered.
func answerQuiz(in io.Reader, out io.Writer, questions []quizgen.Question) []int {
	scanner := bufio.NewScanner(in)
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = scoring.Unanswered
	}

	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", i+1, len(questions), q.Prompt)
		for j, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(q.Options) {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}
		answers[i] = choice - 1

		if answers[i] == q.CorrectIndex {
			fmt.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		} else {
			fmt.Fprintf(out, "%s Answer: %s\n", theme.Incorrect.Render("✗ Wrong."), q.Options[q.CorrectIndex])
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
	return answers
}
