package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/submission"
	"github.com/abhisek/tutor/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer one question and print the explanation",
	Example: `  tutor ask --text "why does the parabola pass through the origin?"
  tutor ask --image problem.jpg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		text, _ := cmd.Flags().GetString("text")
		image, _ := cmd.Flags().GetString("image")
		apiKey, _ := cmd.Flags().GetString("api-key")

		return runAsk(cmd.Context(), d.service, askInput{
			Text:        text,
			ImagePath:   image,
			Credentials: credential.WithInput(apiKey, d.credentials),
			Provider:    d.settings.LLM.Provider,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// asker is the part of the tutor service the ask command needs.
type asker interface {
	Ask(ctx context.Context, credential string, sub submission.Submission) (*tutor.Answer, error)
}

type askInput struct {
	Text        string
	ImagePath   string
	Credentials credential.Chain
	Provider    string
}

// runAsk prints the answer verbatim to stdout. Failures are shown on stderr
// as the same message the other front ends display.
func runAsk(ctx context.Context, t asker, in askInput, stdout, stderr io.Writer) error {
	var img *submission.Image
	if strings.TrimSpace(in.ImagePath) != "" {
		loaded, err := submission.LoadImage(in.ImagePath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return errReported
		}
		img = loaded
	}

	key, source, err := in.Credentials.Resolve(in.Provider)
	if err != nil {
		return fmt.Errorf("resolve credential: %w", err)
	}
	if source != "" {
		fmt.Fprintf(stderr, "Using API key from %s.\n", source)
	}

	answer, err := t.Ask(ctx, key, submission.New(in.Text, img))
	if err != nil {
		fmt.Fprintln(stderr, tutor.UserMessage(err))
		return errReported
	}

	fmt.Fprint(stdout, answer.Text)
	if !strings.HasSuffix(answer.Text, "\n") {
		fmt.Fprintln(stdout)
	}
	return nil
}

func init() {
	askCmd.Flags().StringP("text", "t", "", "Question text")
	askCmd.Flags().StringP("image", "i", "", "Photo of the problem (.jpg, .jpeg or .png)")
	askCmd.Flags().String("api-key", "", "API key (default from secrets file or environment)")
}
