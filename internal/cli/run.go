package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/pact/internal/audit"
	"github.com/sant0-9/pact/internal/intake"
	"github.com/sant0-9/pact/internal/llm"
	"github.com/sant0-9/pact/internal/pipeline"
	"github.com/sant0-9/pact/internal/policy"
	"github.com/sant0-9/pact/internal/tui"
)

// SampleText is processed when neither --text nor --input-file is given.
const SampleText = "I need a prenup in CA. I have about 250000 in separate assets, " +
	"no children, wedding is June 10, 2027."

const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatAuto   = "auto"
)

func RunCmd(opts *rootOptions) *cobra.Command {
	var (
		text      string
		inputFile string
		provider  string
		format    string
		auditDB   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process one intake request and print the result",
		Example: `  pact run --text "We need a postnup in NY, married 2019"
  pact run --input-file intake.txt --provider groq
  pact run --format pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userText, err := readUserText(text, inputFile)
			if err != nil {
				return err
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
			p := pipeline.New(gw,
				pipeline.WithProviderName(cfg.Provider),
				pipeline.WithTimeout(cfg.Timeout),
				pipeline.WithLogger(opts.logger),
			)

			res, err := p.Run(cmd.Context(), userText, nil)
			if err != nil {
				return err
			}

			if path := auditPath(opts, auditDB); path != "" {
				if err := recordRun(cmd, opts, path, userText, res); err != nil {
					return err
				}
			}

			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "raw user intake text")
	cmd.Flags().StringVar(&inputFile, "input-file", "", "path to a text file with the intake")
	cmd.Flags().StringVar(&provider, "provider", "", "model provider ("+strings.Join(providerIDs(), ", ")+")")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json, pretty or auto")
	cmd.Flags().StringVar(&auditDB, "audit-db", "", "record refuse_and_log flags to this SQLite file")
	return cmd
}

// readUserText prefers the file over --text, and falls back to SampleText.
func readUserText(text, inputFile string) (string, error) {
	switch {
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	case text != "":
		return text, nil
	default:
		return SampleText, nil
	}
}

// auditPath returns the database to record into, or "" when auditing is off.
func auditPath(opts *rootOptions, flag string) string {
	if flag != "" {
		return flag
	}
	if opts.cfg.Audit.Enabled {
		return opts.cfg.Audit.Path
	}
	return ""
}

func recordRun(cmd *cobra.Command, opts *rootOptions, path, userText string, res *intake.Result) error {
	db, err := audit.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runID := audit.NewRunID()
	n, err := audit.NewRecorder(db).RecordFlags(cmd.Context(), runID, res.Trace.Provider,
		policy.GuardText(userText, res.Intake), res.PolicyFlags)
	if err != nil {
		return err
	}
	if n > 0 {
		opts.logger.Warn("policy flags recorded", "run_id", runID, "flags", n, "db", path)
	}
	return nil
}

func writeResult(w io.Writer, res *intake.Result, format string) error {
	if format == formatAuto {
		format = formatJSON
		if isTerminal(w) {
			format = formatPretty
		}
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatPretty:
		_, err := fmt.Fprintln(w, tui.Render(res, terminalWidth(w)))
		return err
	default:
		return fmt.Errorf("unknown format %q (want json, pretty or auto)", format)
	}
}
