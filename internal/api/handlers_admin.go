// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"net/http"

	"github.com/leviz2304/bazaar/internal/models"
)

// HandleAdminListUsers returns all accounts.
// GET /api/v1/admin/users
func (h *Handler) HandleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))

	users, total, err := h.store.Users.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list users", err)
		return
	}

	profiles := make([]models.Profile, len(users))
	for i := range users {
		profiles[i] = users[i].Profile()
	}
	respondData(w, http.StatusOK, models.Page{Items: profiles, Total: total, Limit: limit, Offset: offset})
}

// HandleAdminListStores returns all registered stores.
// GET /api/v1/admin/stores
func (h *Handler) HandleAdminListStores(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))

	stores, total, err := h.store.Stores.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list stores", err)
		return
	}
	respondData(w, http.StatusOK, models.Page{Items: stores, Total: total, Limit: limit, Offset: offset})
}

// HandleAdminListOrders returns orders across all stores, optionally
// filtered by status.
// GET /api/v1/admin/orders
func (h *Handler) HandleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))

	orders, total, err := h.store.Orders.List(r.Context(), models.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list orders", err)
		return
	}
	respondData(w, http.StatusOK, models.Page{Items: orders, Total: total, Limit: limit, Offset: offset})
}
