// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

// Package api provides the HTTP handlers and router for the Bazaar
// marketplace: storefront browsing, buyer cart and checkout, the
// payment gateway callback, the seller console and the admin surface.
package api

import (
	"github.com/leviz2304/bazaar/internal/auth"
	"github.com/leviz2304/bazaar/internal/checkout"
	"github.com/leviz2304/bazaar/internal/config"
	"github.com/leviz2304/bazaar/internal/gateway"
	"github.com/leviz2304/bazaar/internal/store"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	store    *store.Store
	checkout *checkout.Service
	gateway  *gateway.Client
	jwt      *auth.JWTManager
	cfg      *config.Config
}

func NewHandler(st *store.Store, svc *checkout.Service, gw *gateway.Client, jwt *auth.JWTManager, cfg *config.Config) *Handler {
	return &Handler{
		store:    st,
		checkout: svc,
		gateway:  gw,
		jwt:      jwt,
		cfg:      cfg,
	}
}

// pageParams resolves limit/offset query parameters against the
// configured defaults and cap.
func (h *Handler) pageParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = h.cfg.API.DefaultPageSize
	}
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
