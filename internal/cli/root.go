// Package cli provides the command-line interface for pact.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sant0-9/pact/internal/config"
)

// rootOptions is shared by every subcommand. cfg and logger are filled in by
// the root pre-run hook.
type rootOptions struct {
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the root command with interrupt handling.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRoot()
	root.Version = version
	return root.ExecuteContext(ctx)
}

func NewRoot() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pact",
		Short: "Prenup / postnup intake pipeline",
		Long: `pact turns a client's free-text description of a prenuptial or
postnuptial agreement into a validated intake record, with follow-up
questions for anything missing and advisory policy flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/pact/config.yaml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with provider credentials")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		RunCmd(opts),
		InteractiveCmd(opts),
		AuditCmd(opts),
		ProvidersCmd(opts),
		InitCmd(opts),
	)
	return root
}

// annotationSkipValidate marks commands that must work with a broken config,
// so a user can inspect providers or rewrite the file.
const annotationSkipValidate = "pact/skip-validate"

func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(o.envFile); err != nil {
		return err
	}

	load := config.Load
	if cmd.Annotations[annotationSkipValidate] != "" {
		load = config.Read
	}
	cfg, err := load(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg

	level := parseLevel(cfg.LogLevel)
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(o.logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
