// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package services adapts SpaceScope components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown lifecycle of *http.Server
  - CacheSweepService: periodic removal of expired cache entries
  - FavoritesGCService: periodic badger value-log garbage collection

Serve returns ctx.Err() when asked to stop and a wrapped error when the
component fails, so the supervisor restarts it. Each service implements
fmt.Stringer; suture logs that name.
*/
package services
