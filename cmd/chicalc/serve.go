package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sehha/chicalc/internal/backend"
	"github.com/sehha/chicalc/internal/config"
	"github.com/sehha/chicalc/internal/logging"
	"github.com/sehha/chicalc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	Long: `Starts the JSON API under /api/v1. Settings come from the environment
(CHICALC_ADDR, CHICALC_BACKEND_URL, LOG_LEVEL) and can be overridden by flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.ServerSettingsFromEnv()
		if cmd.Flags().Changed("addr") {
			settings.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("backend-url") {
			settings.BackendURL, _ = cmd.Flags().GetString("backend-url")
		}
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			settings.LogLevel = "debug"
		}

		logger, err := logging.NewLogger(settings.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		var client backend.Client
		if settings.BackendURL != "" {
			client = backend.NewHTTPClient(settings.BackendURL)
		} else {
			logger.Warn("no backend configured; chat, search and insurance status will return 503")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server",
			zap.String("addr", settings.Addr),
			zap.String("catalog_version", cat.Metadata.Version),
		)
		return server.New(cat, client, logger).ListenAndServe(ctx, settings.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080 or $CHICALC_ADDR)")
	serveCmd.Flags().String("backend-url", "", "Assistant backend base URL (default $CHICALC_BACKEND_URL)")
}
