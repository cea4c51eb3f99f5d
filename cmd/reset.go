package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a learner's streak, points and completion history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		if !yes {
			fmt.Printf("Delete all progress for %q? [y/N] ", d.cfg.Learner)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := d.backend.DeleteProfile(cmd.Context(), d.cfg.Learner); err != nil {
			return fmt.Errorf("reset %q: %w", d.cfg.Learner, err)
		}
		d.logger.Info("profile reset", "learner", d.cfg.Learner)
		fmt.Printf("Progress for %q has been reset.\n", d.cfg.Learner)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
