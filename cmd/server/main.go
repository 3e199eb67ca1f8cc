// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Command server runs the Daybreak backend: the HTTP API, the
// WebSocket fan-out hub, the rollover sweeper and the deadline alert
// engine, all under one supervisor tree.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/daybreak-labs/daybreak/internal/alert"
	"github.com/daybreak-labs/daybreak/internal/api"
	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/config"
	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/metrics"
	"github.com/daybreak-labs/daybreak/internal/store"
	"github.com/daybreak-labs/daybreak/internal/supervisor"
	"github.com/daybreak-labs/daybreak/internal/supervisor/services"
	"github.com/daybreak-labs/daybreak/internal/sweep"
	"github.com/daybreak-labs/daybreak/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Msg("starting daybreak")

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)
	startTime := time.Now()

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("closing store failed")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	hub := websocket.NewHub()

	handler := api.NewHandler(st, hub, cfg, jwtManager, hasher)
	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager, st), api.NewChiMiddleware(&cfg.Security))

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		// WriteTimeout is deliberately unset: it would sever long-lived
		// WebSocket connections.
	}

	sweeper := sweep.New(st, hub, &cfg.Sweep)
	alerts := alert.New(st, alert.MultiNotifier{
		alert.NewLogNotifier(),
		alert.NewHubNotifier(hub),
	})

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddJobService(services.NewJobService("rollover-sweeper", sweeper))
	tree.AddJobService(services.NewJobService("alert-engine", alerts))
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.Timeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go trackUptime(ctx, startTime)

	logging.Info().Str("addr", httpServer.Addr).Msg("listening")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop in time")
		}
	}

	logging.Info().Msg("shutdown complete")
	return nil
}

func trackUptime(ctx context.Context, startTime time.Time) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(startTime).Seconds())
		}
	}
}
