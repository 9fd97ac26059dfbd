package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	return app.Run(app.Options{
		Tutor:       d.service,
		Provider:    d.settings.LLM.Provider,
		Credentials: d.credentials,
		Subtitle:    d.subtitle(),
	})
}
