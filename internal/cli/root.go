package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation
type app struct {
	cfg    Config
	client *Client
}

func (a *app) output(w io.Writer) *Output {
	return NewOutput(a.cfg.Output, w)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}
	cfg, cfgErr := LoadConfig()
	if cfgErr == nil {
		a.cfg = cfg
	}

	rootCmd := &cobra.Command{
		Use:   "tournament",
		Short: "CLI tool for the tournament player registry",
		Long: `tournament is a CLI tool for the tournament JSON API.

It creates, updates, reads, lists and removes players, and checks server health.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			a.client = NewClient(a.cfg.ServerURL, a.cfg.Timeout)
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "Server URL (env: TOURNAMENT_SERVER)")
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "Output format: text, json (env: TOURNAMENT_OUTPUT)")
	flags.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "Request timeout (env: TOURNAMENT_TIMEOUT)")

	rootCmd.AddCommand(newPlayerCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
