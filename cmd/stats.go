package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/badges"
	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's streak, points, best scores and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		p, err := d.backend.LoadProfile(cmd.Context(), d.cfg.Learner)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No progress recorded for %q yet.\n", d.cfg.Learner)
			return nil
		}
		loc, err := d.cfg.Location()
		if err != nil {
			return err
		}
		today := ledger.Today(time.Now(), loc)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Learner:  %s\n", d.cfg.Learner)
		fmt.Fprintf(out, "Streak:   %s\n", layout.StreakLabel(p.StreakCount))
		fmt.Fprintf(out, "Points:   %s\n", humanize.Comma(int64(p.TotalPoints)))
		if p.LastLessonDate != nil {
			fmt.Fprintf(out, "Last:     %s\n", p.LastLessonDate)
		}
		if ledger.DailyChallengeDone(*p, today) {
			fmt.Fprintln(out, "Today:    daily challenge completed")
		} else {
			fmt.Fprintln(out, "Today:    daily challenge not done yet")
		}

		best := ledger.BestScores(*p)
		scores := newTable("Topic", "Best")
		for _, t := range d.catalog.Topics() {
			score := "-"
			if s, ok := best[t.ID]; ok {
				score = fmt.Sprintf("%d%%", s)
			}
			scores.Row(truncate(t.Title, 36), score)
		}
		fmt.Fprintln(out)
		printTable(out, scores)

		earned := badges.Earned(*p)
		fmt.Fprintf(out, "\nBadges (%d of %d)\n", len(earned), len(badges.All()))
		if len(earned) > 0 {
			shelf := newTable("", "Badge", "Rarity")
			for _, b := range earned {
				shelf.Row(b.Icon(), b.Title, b.Rarity.DisplayName())
			}
			printTable(out, shelf)
		}
		if next := badges.NextStreakMilestone(p.StreakCount); next > 0 {
			fmt.Fprintf(out, "\nNext streak badge in %s.\n", layout.StreakLabel(next-p.StreakCount))
		}
		return nil
	},
}
