package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor as a web page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		srv, err := server.New(d.service, server.Config{
			Provider:    d.settings.LLM.Provider,
			Credentials: d.credentials,
			Subtitle:    d.subtitle(),
		})
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "Tutor is running at http://%s\n", d.settings.Addr)
		return srv.Run(ctx, d.settings.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from TUTOR_ADDR, profile, else 127.0.0.1:8501)")
}
