package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/jumpbble/internal/api"
	"github.com/mcoot/jumpbble/internal/factory"
	"github.com/mcoot/jumpbble/internal/services/game"
)

func newServeCmd(cfg *Config) *cobra.Command {
	addr := getEnvOrDefault("JUMPBBLE_ADDR", api.DefaultServerConfig().Addr)
	idleTimeout := time.Hour

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Set up logging with JSON output
			logger := NewServerLogger(cmd.OutOrStdout(), cfg.Verbose)
			slog.SetDefault(logger)

			fc := cfg.FactoryConfig()
			fc.Logger = logger
			app, err := factory.New(cmd.Context(), fc)
			if err != nil {
				logger.Error("failed to create application", slog.String("error", err.Error()))
				return err
			}
			defer func() { _ = app.Close() }()

			router := api.NewRouter(api.RouterConfig{
				Logger:            logger,
				GameController:    app.GameController,
				BotService:        app.BotService,
				DictionaryService: app.DictionaryService,
				Storage:           app.Storage,
			})

			serverConfig := api.DefaultServerConfig()
			serverConfig.Addr = addr
			server := api.NewServer(router, serverConfig, logger)
			if err := server.Listen(); err != nil {
				return err
			}

			// Handle graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if idleTimeout > 0 {
				go expireIdleGames(ctx, app.GameController, idleTimeout, logger)
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutdown signal received")
				return server.Shutdown(context.Background())
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address (env: JUMPBBLE_ADDR)")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", idleTimeout, "Drop games untouched for this long (0 keeps them)")

	return cmd
}

func expireIdleGames(ctx context.Context, games *game.Controller, maxIdle time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(min(maxIdle, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := games.ExpireIdle(ctx, maxIdle); n > 0 {
				logger.Info("expired idle games", slog.Int("count", n), slog.Int("active", games.ActiveGames()))
			}
		}
	}
}
