package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/catalog"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic catalog (optionally filtered by difficulty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")

		cat, err := catalog.Default()
		if err != nil {
			return err
		}

		var topics []catalog.Topic
		for _, t := range cat.Topics() {
			if difficulty != "" && !strings.EqualFold(string(t.Difficulty), difficulty) {
				continue
			}
			topics = append(topics, t)
		}
		if len(topics) == 0 {
			return fmt.Errorf("no topics found for difficulty %q", difficulty)
		}

		t := newTable("ID", "Title", "Difficulty", "Questions", "Points")
		for _, tp := range topics {
			t.Row(tp.ID, truncate(tp.Title, 36), string(tp.Difficulty),
				strconv.Itoa(tp.QuestionCount), strconv.Itoa(tp.Points))
		}
		printTable(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("difficulty", "", "Filter by difficulty (Beginner, Intermediate or Advanced)")
}
