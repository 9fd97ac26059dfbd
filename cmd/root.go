package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/store"
)

// errReported marks failures whose message was already shown to the user.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "AI math and physics tutor",
	Long: "Tutor answers middle-school math and physics questions, typed or " +
		"photographed, with step-by-step explanations.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the usage database (overrides TUTOR_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to the profile file (overrides TUTOR_CONFIG env var)")
	rootCmd.PersistentFlags().String("provider", "", "AI backend: gemini, openai, anthropic or openrouter")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default from TUTOR_LOG_LEVEL, else warn)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().Bool("no-usage", false, "Do not record backend calls in the usage ledger")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// setupLogging installs the default slog logger.
func setupLogging(cmd *cobra.Command) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	if levelName == "" {
		levelName = os.Getenv("TUTOR_LOG_LEVEL")
	}
	level, err := parseLevel(levelName)
	if err != nil {
		return err
	}

	w, err := logOutput(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// logOutput picks where logs go: --log-file when set, nowhere for the root
// command since the terminal UI owns the screen, stderr otherwise.
func logOutput(cmd *cobra.Command) (io.Writer, error) {
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return f, nil
	}
	if !cmd.HasParent() {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

func parseLevel(name string) (slog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
