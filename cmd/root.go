package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/config"
	"github.com/abhisek/literacyhub/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "literacyhub",
	Short: "Daily financial literacy quizzes in your terminal",
	Long: "Literacy Hub turns short money lessons into generated quizzes, keeps a daily streak " +
		"and adds up points as you learn.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LITERACYHUB_DB env var)")
	rootCmd.PersistentFlags().StringP("learner", "l", "", "Learner profile to use (overrides LITERACYHUB_LEARNER)")
	rootCmd.PersistentFlags().String("store", "", "Profile store: sqlite, postgres or memory (overrides LITERACYHUB_STORE)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("learner"); v != "" {
		cfg.Learner = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db / LITERACYHUB_DB
// (already folded into cfg.DB), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
