package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tair/retail-dashboard/internal/app"
	"github.com/tair/retail-dashboard/pkg/config"
	"github.com/tair/retail-dashboard/pkg/logger"
	"github.com/tair/retail-dashboard/pkg/tracing"
)

var cfg *config.Config

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Retail sales dashboard service",
	Long: `Retail sales dashboard: product catalog with derived revenue and
recommendation scores, role-based sessions and checkout.

The store backend is chosen with STORE_DRIVER (mongo, postgres, memory).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Init(cfg.Service.Name, cfg.Service.IsDevelopment())
		logger.SetLevel(cfg.Service.LogLevel)
	},
}

// serveCmd runs the HTTP and gRPC servers
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and gRPC health servers",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Str("instance", cfg.Service.InstanceID).
		Str("driver", cfg.Driver).
		Msg("Starting catalog service")

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Service.Name, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	a, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Seed.Enabled {
		if _, err := a.Seed(ctx, false); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to seed catalog")
		}
	}

	return a.Run(ctx)
}
