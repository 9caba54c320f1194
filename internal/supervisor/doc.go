// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package supervisor runs SpaceScope's long-lived goroutines under a suture v4
supervisor tree.

# Layout

	RootSupervisor ("spacescope")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── CacheSweepService
	│   └── FavoritesGCService (if FAVORITES_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts its own failures, so a sweeper that keeps crashing enters
backoff without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewCacheSweepService(store, cfg.Cache.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Failure Handling

suture keeps a failure counter per supervisor that decays over FailureDecay
seconds. Once it crosses FailureThreshold the supervisor waits FailureBackoff
before the next restart. A service that returns nil is not restarted; any
other return value counts as a failure.

Events (start, stop, panic, backoff) are logged through sutureslog, which is
bridged onto zerolog by logging.NewSlogLogger.

# Shutdown

Canceling the context passed to Serve stops every service. Services that do
not return within ShutdownTimeout show up in UnstoppedServiceReport.

The aggregator and the badger handle are plain libraries and are not
supervised; main closes the favorites store after the tree has stopped.
*/
package supervisor
