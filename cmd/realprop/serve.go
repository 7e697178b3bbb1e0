// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/realprop/realprop/internal/auth"
	authpg "github.com/realprop/realprop/internal/auth/postgres"
	"github.com/realprop/realprop/internal/catalog"
	catpg "github.com/realprop/realprop/internal/catalog/postgres"
	"github.com/realprop/realprop/internal/httpapi"
	"github.com/realprop/realprop/internal/logging"
	"github.com/realprop/realprop/internal/observability"
	"github.com/realprop/realprop/internal/settings"
	"github.com/realprop/realprop/internal/store"
)

// Default values for serve command flags.
const (
	defaultAPIAddr      = ":8080"
	defaultMetricsAddr  = "127.0.0.1:9100"
	defaultLogFormat    = "json"
	shutdownGracePeriod = 10 * time.Second
)

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	apiAddr     string
	metricsAddr string
	logFormat   string
	autoMigrate bool
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the listing API server",
		Long: `Start the HTTP API server for the public listing catalog and the
admin console, plus a metrics/health endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.apiAddr, "addr", defaultAPIAddr, "API listen address")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", defaultLogFormat, "log format (json or text)")
	cmd.Flags().BoolVar(&cfg.autoMigrate, "auto-migrate", true, "apply pending migrations on startup")

	return cmd
}

func runServe(ctx context.Context, cfg *serveConfig) error {
	logging.SetDefault("realprop", version, cfg.logFormat)
	logger := slog.Default()

	databaseURL, err := databaseURLFromEnv()
	if err != nil {
		return err
	}
	sessionSecret := os.Getenv("SESSION_SECRET")
	production := os.Getenv("REALPROP_ENV") == "production"

	if cfg.autoMigrate {
		if err := applyMigrations(databaseURL); err != nil {
			return err
		}
	}

	db, err := store.Open(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	propertyRepo := catpg.NewPropertyRepository(db.Pool())
	adminRepo := authpg.NewAdminRepository(db.Pool())
	settingsRepo := settings.NewPostgresRepository(db.Pool())

	catalogSvc, err := catalog.NewService(propertyRepo)
	if err != nil {
		return err
	}

	codec, err := auth.NewCookieCodec(sessionSecret, production)
	if err != nil {
		return err
	}
	authSvc, err := auth.NewServiceWithLogger(adminRepo, codec, auth.NewArgon2idHasher(), logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured. Readiness tracks the
	// database, not the API listener.
	var obsServer *observability.Server
	if cfg.metricsAddr != "" {
		obsServer = observability.NewServer(cfg.metricsAddr, func() bool {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer pingCancel()
			return db.Ready(pingCtx)
		})
		obsErrCh, startErr := obsServer.Start()
		if startErr != nil {
			return oops.Code("SERVER_FAILED").With("operation", "start observability server").Wrap(startErr)
		}
		go func() {
			if obsErr := <-obsErrCh; obsErr != nil {
				slog.Error("observability server error", "error", obsErr)
				cancel()
			}
		}()
	}

	var metrics *observability.Metrics
	if obsServer != nil {
		metrics = obsServer.Metrics()
	} else {
		// Metrics disabled: record into an unexported registry.
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	apiServer, err := httpapi.NewServer(httpapi.Config{
		Addr:     cfg.apiAddr,
		Catalog:  catalogSvc,
		Auth:     authSvc,
		Settings: settingsRepo,
		Codec:    codec,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	apiErrCh := make(chan error, 1)
	go func() {
		apiErrCh <- apiServer.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("realprop server ready",
		"api_addr", cfg.apiAddr,
		"metrics_addr", cfg.metricsAddr,
		"production", production,
	)

	var runErr error
	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case runErr = <-apiErrCh:
		if runErr != nil {
			slog.Error("api server error", "error", runErr)
		}
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return runErr
}

// applyMigrations brings the schema up to date and releases the migrator.
func applyMigrations(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("error closing migrator", "error", closeErr)
		}
	}()

	if err := migrator.Up(); err != nil {
		return err
	}
	slog.Info("migrations applied")
	return nil
}
