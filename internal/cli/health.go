package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  "Check server health. With --wait, retry until the server answers or the duration elapses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			deadline := time.Now().Add(wait)
			for {
				var result HealthResult
				err := a.client.Get("/api/v1/health", &result)
				if err == nil {
					a.output(cmd.OutOrStdout()).Print(result)
					return nil
				}
				if !time.Now().Before(deadline) {
					return fmt.Errorf("server not healthy: %w", err)
				}
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-time.After(200 * time.Millisecond):
				}
			}
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying for this long")

	return cmd
}
