package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sant0-9/pact/internal/audit"
	"github.com/sant0-9/pact/internal/llm"
	"github.com/sant0-9/pact/internal/tui"
)

var errNoTerminal = errors.New("interactive mode requires a terminal; use `pact run` instead")

// runTUI is replaced in tests.
var runTUI = tui.Run

var hasTerminal = func(cmd *cobra.Command) bool {
	return isTerminal(os.Stdin) && isTerminal(cmd.OutOrStdout())
}

func InteractiveCmd(opts *rootOptions) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Start an interactive intake session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !hasTerminal(cmd) {
				return errNoTerminal
			}

			cfg := opts.cfg
			if provider != "" {
				cfg.SetProvider(provider)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			gw, err := llm.NewGateway(cfg)
			if err != nil {
				return err
			}

			// keep log lines off the session screen
			logger := newLogger(cmd.ErrOrStderr(), slog.LevelError)

			tuiOpts := tui.Options{
				Provider: cfg.Provider,
				Timeout:  cfg.Timeout,
				Logger:   logger,
			}
			if cfg.Audit.Enabled {
				db, err := audit.Open(cfg.Audit.Path)
				if err != nil {
					return err
				}
				defer db.Close()
				tuiOpts.Recorder = audit.NewRecorder(db)
			}

			return runTUI(gw, tuiOpts)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "model provider")
	return cmd
}
