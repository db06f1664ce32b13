package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the login server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			start := time.Now()
			if err := client.Get(cmd.Context(), "/health", &result); err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			logger.Debug("health check", slog.Duration("duration", time.Since(start)))

			if result.Status != "ok" {
				return fmt.Errorf("server reports status %q", result.Status)
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
