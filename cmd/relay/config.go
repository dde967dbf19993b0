package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Load and validate configuration from the environment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "configuration OK\n")
			fmt.Fprintf(out, "  env:          %s\n", cfg.Primary.Env)
			fmt.Fprintf(out, "  port:         %s\n", cfg.Server.Port)
			fmt.Fprintf(out, "  provider:     %s (timeout %s)\n", cfg.Provider.BaseURL, cfg.Provider.Timeout)
			if cfg.RateLimit.Enabled {
				fmt.Fprintf(out, "  rate limit:   %d per %s (%s)\n", cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Backend)
			} else {
				fmt.Fprintf(out, "  rate limit:   disabled\n")
			}
			fmt.Fprintf(out, "  new relic:    %t\n", cfg.Observability.NewRelicEnabled())

			return nil
		},
	})

	return cmd
}
