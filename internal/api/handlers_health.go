// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"net/http"
	"time"
)

// HandleHealth reports process and database health.
// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if h.store.DB().IsClosed() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondData(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
	})
}

// HandleHealthLive reports process liveness only; it never touches the
// database, so a wedged store does not get the process restarted by a
// liveness probe.
// GET /health/live
func (h *Handler) HandleHealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HandleHealthReady reports readiness to serve traffic.
// GET /health/ready
func (h *Handler) HandleHealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store.DB().IsClosed() {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "database unavailable", nil)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
