package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newHealthCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Server == "" {
				return errors.New("--server is required")
			}

			result, err := NewClient(cfg.Server).Health(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd, cfg).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Server, "server", cfg.Server, "Server URL (env: JUMPBBLE_SERVER)")

	return cmd
}
