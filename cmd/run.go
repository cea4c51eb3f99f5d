package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/app"
)

// runApp builds dependencies and launches the TUI. skipWelcome opens the
// topic list for the configured learner directly.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	d, err := loadDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.close()

	gen, err := d.generator(cmd.Context())
	if err != nil {
		return err
	}
	newEngine, err := d.engineFactory(gen, d.notifier())
	if err != nil {
		return err
	}

	d.logger.Info("starting", "version", version, "store", d.cfg.Store, "learner", d.cfg.Learner)
	return app.Run(app.Options{
		LearnerID:   d.cfg.Learner,
		SkipWelcome: skipWelcome,
		Catalog:     d.catalog,
		Profiles:    d.backend,
		NewEngine:   newEngine,
	})
}
