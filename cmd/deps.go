package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/store"
	"github.com/abhisek/tutor/internal/tutor"
)

// deps holds what every front end needs.
type deps struct {
	settings    config.Settings
	service     *tutor.Service
	credentials credential.Chain
	close       func()
}

// loadSettings reads the profile and applies env and flag overrides.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	profile, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	var o config.Overrides
	o.Provider, _ = cmd.Flags().GetString("provider")
	o.Addr, _ = cmd.Flags().GetString("addr")
	o.NoUsage, _ = cmd.Flags().GetBool("no-usage")
	return config.Resolve(profile, o)
}

// openUsage opens the usage ledger. A ledger that cannot be opened is
// reported and skipped; answering questions does not depend on it.
func openUsage(cmd *cobra.Command, s config.Settings) (store.EventRepo, func()) {
	if !s.UsageEnabled {
		return nil, func() {}
	}

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			return st.EventRepo(), func() { st.Close() }
		}
	}
	fmt.Fprintln(os.Stderr, "Usage ledger unavailable:", err)
	fmt.Fprintln(os.Stderr, "Backend calls will not be recorded.")
	return nil, func() {}
}

// buildDeps wires settings, ledger, service and credential chain.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	repo, closeUsage := openUsage(cmd, s)
	svc := tutor.NewService(
		llm.NewFactory(s.LLM, repo),
		s.Tutor,
		tutor.WithLogger(slog.Default()),
	)

	return &deps{
		settings:    s,
		service:     svc,
		credentials: credential.Preconfigured(credential.NewSecretsFile(credential.DefaultSecretsPath())),
		close:       closeUsage,
	}, nil
}

// subtitle describes the student, e.g. "Grade 9 · math & physics".
func (d *deps) subtitle() string {
	return tutor.Subtitle(d.settings.Tutor.Persona)
}
