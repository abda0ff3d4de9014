package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sant0-9/pact/internal/audit"
)

func AuditCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect recorded policy flags",
	}
	cmd.AddCommand(auditListCmd(opts))
	return cmd
}

func auditListCmd(opts *rootOptions) *cobra.Command {
	var (
		runID   string
		limit   int
		auditDB string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := auditDB
			if path == "" {
				path = opts.cfg.Audit.Path
			}

			db, err := audit.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := audit.NewRecorder(db).List(cmd.Context(), runID, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No audit records.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tRUN\tPROVIDER\tFLAG\tEXCERPT")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%q\n",
					r.CreatedAt.Format(time.RFC3339), r.RunID, r.Provider, r.FlagCode, r.GuardExcerpt)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "only show records for this run ID")
	cmd.Flags().IntVar(&limit, "limit", audit.DefaultListLimit, "maximum records to show")
	cmd.Flags().StringVar(&auditDB, "audit-db", "", "audit database (default from config)")
	return cmd
}
