package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/tagscribe/internal/api"
	"github.com/Taichi-iskw/tagscribe/internal/app"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
	"github.com/Taichi-iskw/tagscribe/migrations"
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Serve the transcript, taxonomy, impression and analytics API over HTTP/JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := a.Config
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := migrations.Up(cfg.DatabaseURL); err != nil {
				return err
			}
			a.Log.Info("database migrations applied")
		}

		shutdownTracing, err := telemetry.Init(ctx, a.Log, telemetry.Options{
			Enabled:     cfg.Tracing.Enabled,
			ServiceName: "tagscribe",
			Version:     version,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
				a.Log.Warn("tracing shutdown failed", "error", err)
			}
		}()

		origins, _ := cmd.Flags().GetStringSlice("allowed-origins")
		server := api.NewServer(api.Services{
			Taxonomy:    a.Taxonomy,
			Transcripts: a.Transcripts,
			Impressions: a.Impressions,
			Relocation:  a.Relocation,
			Analytics:   a.Analytics,
			Database:    a.Pool,
		}, api.Options{
			RequestTimeout: cfg.Server.RequestTimeout,
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			AllowedOrigins: origins,
		}, a.Log)

		return server.Run(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "CORS allowed origins (default any)")
}
