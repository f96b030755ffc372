// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leviz2304/bazaar/internal/auth"
	"github.com/leviz2304/bazaar/internal/checkout"
	"github.com/leviz2304/bazaar/internal/metrics"
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// HandleCheckout places an order from the buyer's cart. For gateway
// payments the response carries the redirect URL the client sends the
// buyer's browser to; for cash on delivery the order is complete as
// placed.
// POST /api/v1/orders
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	result, err := h.checkout.Checkout(r.Context(), checkout.Request{
		BuyerID:       claims.UserID,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		ClientIP:      clientIP(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			metrics.RecordCheckoutRejection("empty_cart")
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", checkout.ErrEmptyCart.Error(), nil)
		case errors.Is(err, checkout.ErrMixedStores):
			metrics.RecordCheckoutRejection("mixed_stores")
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", checkout.ErrMixedStores.Error(), nil)
		case errors.Is(err, checkout.ErrMissingAddress):
			metrics.RecordCheckoutRejection("address")
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", checkout.ErrMissingAddress.Error(), nil)
		case errors.Is(err, store.ErrNotFound):
			metrics.RecordCheckoutRejection("other")
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "cart references a product that no longer exists", nil)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "checkout failed", err)
		}
		return
	}

	metrics.RecordOrderCreated(string(result.Order.PaymentMethod), result.Order.Amount)

	payload := map[string]interface{}{"order": result.Order}
	if result.RedirectURL != "" {
		payload["redirect_url"] = result.RedirectURL
	}
	respondData(w, http.StatusCreated, payload)
}

// HandleListMyOrders returns the authenticated buyer's orders.
// GET /api/v1/orders
func (h *Handler) HandleListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))

	orders, total, err := h.store.Orders.List(r.Context(), models.OrderFilter{
		BuyerID: claims.UserID,
		Status:  r.URL.Query().Get("status"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list orders", err)
		return
	}
	respondData(w, http.StatusOK, models.Page{Items: orders, Total: total, Limit: limit, Offset: offset})
}

// HandleGetOrder returns one order. Buyers see only their own orders;
// admins see any.
// GET /api/v1/orders/{id}
func (h *Handler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load order", err)
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if order.BuyerID != claims.UserID && claims.Role != models.RoleAdmin {
		// Hide existence from non-owners.
		respondError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}
	respondData(w, http.StatusOK, order)
}
