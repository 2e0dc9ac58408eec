package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mcoot/jumpbble/internal/factory"
)

// NewRootCmd creates the root command. A .env file in the working directory
// is loaded first so its JUMPBBLE_* values act as flag defaults.
func NewRootCmd() *cobra.Command {
	_ = godotenv.Load()
	cfg := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "jumpbble",
		Short: "A single-player word game on a wrapping grid",
		Long: `jumpbble is a single-player word game. You stand on a toroidal grid and
play letter tiles that carry you across the board; words formed in rows and
columns score points, and special cells grant status effects.

Play interactively, let a bot simulate games, or serve the JSON API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				cfg.seedSet = true
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigDir, "config-dir", cfg.ConfigDir, "Directory with letters.yaml and special_tiles.yaml (env: JUMPBBLE_CONFIG_DIR)")
	flags.StringVar(&cfg.Dictionary, "dictionary", cfg.Dictionary, "Word list file, one word per line (env: JUMPBBLE_DICTIONARY)")
	flags.StringVar(&cfg.Storage, "storage", cfg.Storage, "Dictionary storage: memory, redis (env: JUMPBBLE_STORAGE)")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL when storage is redis (env: JUMPBBLE_REDIS_URL)")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for a reproducible board and bag (env: JUMPBBLE_SEED)")
	flags.IntVar(&cfg.Size, "size", cfg.Size, "Board size, overriding the configured grid_size")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd(cfg))
	rootCmd.AddCommand(newSimulateCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newWordsCmd(cfg))
	rootCmd.AddCommand(newHealthCmd(cfg))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp wires the in-process application from the global flags
func newApp(cmd *cobra.Command, cfg *Config) (*factory.App, error) {
	fc := cfg.FactoryConfig()
	fc.Logger = NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	return factory.New(cmd.Context(), fc)
}

func newOutput(cmd *cobra.Command, cfg *Config) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
