package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sant0-9/pact/internal/config"
)

func InitCmd(opts *rootOptions) *cobra.Command {
	var (
		force    bool
		provider string
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Annotations: map[string]string{annotationSkipValidate: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				var err error
				if path, err = config.ConfigPath(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if config.Exists(path) && !force {
				fmt.Fprintf(out, "Config already exists at %s (use --force to overwrite)\n", path)
				return nil
			}

			cfg := config.DefaultConfig()
			if provider != "" {
				cfg.SetProvider(provider)
				if p := config.GetProvider(cfg.Provider); p != nil {
					cfg.Model = p.DefaultModel
				}
			}
			// credentials stay in the environment
			cfg.APIKey = ""
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(out, "Created config: %s\n", path)
			if p := config.GetProvider(cfg.Provider); p != nil && p.NeedsAPIKey {
				fmt.Fprintf(out, "\nSet %s in your environment or .env file.\n", p.EnvKey)
				if p.SignupURL != "" {
					fmt.Fprintf(out, "Get a key at: %s\n", p.SignupURL)
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  pact run --text \"...\"   # Process one intake")
			fmt.Fprintln(out, "  pact interactive        # Start a session")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().StringVar(&provider, "provider", "", "provider to configure")
	return cmd
}
