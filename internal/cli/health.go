package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			start := time.Now()
			if err := client.Get("/health", &result); err != nil {
				return fmt.Errorf("%s is unreachable: %w", cfg.ServerURL, err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			if cfg.Verbose {
				fmt.Printf("Round trip: %s\n", time.Since(start).Round(time.Millisecond))
			}
			return nil
		},
	}
}
