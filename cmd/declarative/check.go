package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/internal/config"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	var snapshot bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate declarative.json and the demo tree",
		Long: `Load and validate declarative.json, then build and render the demo
dashboard once so that malformed branch lists surface as errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !config.Exists(flags.configDir) {
				info(cmd.OutOrStdout(), "No %s found; using defaults", config.ConfigFileName)
			}
			if snapshot {
				if err := cfg.ValidateSnapshot(); err != nil {
					return err
				}
			}
			page, err := renderDemo(cfg, nil)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Configuration valid (server %s, log level %s)", cfg.Address(), cfg.LogLevel)
			success(cmd.OutOrStdout(), "Demo tree renders (%d bytes, branch %s)", len(page.HTML), page.Selected)
			return nil
		},
	}

	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Also require snapshot settings")
	return cmd
}
