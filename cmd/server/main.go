// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

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

	"github.com/hdm08/SpaceScope/internal/aggregator"
	"github.com/hdm08/SpaceScope/internal/api"
	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/favorites"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/metrics"
	"github.com/hdm08/SpaceScope/internal/nasa"
	"github.com/hdm08/SpaceScope/internal/supervisor"
	"github.com/hdm08/SpaceScope/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Int("max_items", cfg.Aggregator.MaxItems).
		Bool("favorites_enabled", cfg.Favorites.Enabled).
		Msg("Starting SpaceScope")
	if cfg.UsingDemoKey() {
		logging.Warn().Msg("NASA_API_KEY not set, using DEMO_KEY (30 requests/hour per IP)")
	}

	upstream := nasa.NewCircuitBreakerClient(&cfg.NASA)
	store := cache.New()
	agg := aggregator.New(upstream, upstream, store, &cfg.Aggregator, &cfg.Cache)

	var favs *favorites.Store
	if cfg.Favorites.Enabled {
		favs, err = favorites.Open(&cfg.Favorites)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Favorites.Path).Msg("Failed to open favorites store")
		}
		defer func() {
			if err := favs.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing favorites store")
			}
		}()
	}

	handler := api.NewHandler(agg, favs, upstream)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewCacheSweepService(store, cfg.Cache.SweepInterval))
	if favs != nil {
		tree.AddMaintenanceService(services.NewFavoritesGCService(favs, cfg.Favorites.GCInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	watchLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly once and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for services to stop")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("SpaceScope stopped")
}

// watchLogLevel re-applies the logging section whenever the config file
// changes. Everything else needs a restart.
func watchLogLevel() {
	path := config.ConfigFilePath()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config change")
			return
		}
		logging.Init(logging.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			Caller:    cfg.Logging.Caller,
			Timestamp: true,
			Output:    os.Stderr,
		})
		logging.Info().Str("level", cfg.Logging.Level).Msg("Logging configuration reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}
