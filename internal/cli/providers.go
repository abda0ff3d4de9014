package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sant0-9/pact/internal/config"
)

func providerIDs() []string {
	return config.ProviderIDs()
}

func ProvidersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "providers",
		Short:       "List model providers",
		Annotations: map[string]string{annotationSkipValidate: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tNAME\tKEY\tDEFAULT MODEL\tDESCRIPTION")
			for _, p := range config.Providers {
				current := " "
				if p.ID == opts.cfg.Provider {
					current = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					current, p.ID, p.Name, keyStatus(p), orDash(p.DefaultModel), p.Description)
			}
			return tw.Flush()
		},
	}
}

func keyStatus(p config.ProviderInfo) string {
	if !p.NeedsAPIKey {
		return "-"
	}
	if os.Getenv(p.EnvKey) != "" {
		return p.EnvKey + " (set)"
	}
	return p.EnvKey
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
