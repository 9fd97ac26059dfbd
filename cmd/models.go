package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/tutor"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the API key can use and the one that would answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		apiKey, _ := cmd.Flags().GetString("api-key")
		all, _ := cmd.Flags().GetBool("all")
		key, _, err := credential.WithInput(apiKey, d.credentials).Resolve(d.settings.LLM.Provider)
		if err != nil {
			return fmt.Errorf("resolve credential: %w", err)
		}

		return runModels(cmd.Context(), d.service, key, all, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

type discoverer interface {
	Discover(ctx context.Context, credential string) ([]llm.ModelDescriptor, string, error)
}

// runModels prints capable models, or every model with all, and marks the
// one selection would pick.
func runModels(ctx context.Context, d discoverer, key string, all bool, stdout, stderr io.Writer) error {
	models, selected, err := d.Discover(ctx, key)
	if err != nil && tutor.Classify(err) != tutor.KindNoUsableModel {
		fmt.Fprintln(stderr, tutor.UserMessage(err))
		return errReported
	}

	shown := models
	if !all {
		shown = modelselect.Capable(models)
	}
	for _, m := range shown {
		mark := " "
		if m.ID == selected {
			mark = "*"
		}
		line := fmt.Sprintf("%s %s", mark, m.ID)
		if m.DisplayName != "" {
			line += "  (" + m.DisplayName + ")"
		}
		if !m.CanGenerate {
			line += "  [cannot generate]"
		}
		fmt.Fprintln(stdout, line)
	}

	fmt.Fprintf(stderr, "%d models listed, %d can answer questions.\n",
		len(models), len(modelselect.Capable(models)))
	if selected == "" {
		fmt.Fprintln(stderr, tutor.UserMessage(modelselect.ErrNoUsableModel))
		return errReported
	}
	return nil
}

func init() {
	modelsCmd.Flags().String("api-key", "", "API key (default from secrets file or environment)")
	modelsCmd.Flags().Bool("all", false, "Also list models that cannot generate answers")
}
