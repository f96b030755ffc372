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
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// HandleGetCart returns the authenticated buyer's cart.
// GET /api/v1/cart
func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	cart, err := h.store.Carts.Get(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load cart", err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// HandleAddCartLine adds (or merges) a line into the buyer's cart. The
// product must exist at add time; price is not snapshotted until
// checkout.
// POST /api/v1/cart/items
func (h *Handler) HandleAddCartLine(w http.ResponseWriter, r *http.Request) {
	var req CartLineRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.store.Products.Get(r.Context(), req.ProductID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load product", err)
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	err := h.store.Carts.AddLine(r.Context(), claims.UserID, models.CartLine{
		ProductID: req.ProductID,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update cart", err)
		return
	}

	cart, err := h.store.Carts.Get(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load cart", err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// HandleRemoveCartLine removes one line from the buyer's cart. The
// color query parameter selects the variant; removing an absent line is
// a no-op.
// DELETE /api/v1/cart/items/{productID}
func (h *Handler) HandleRemoveCartLine(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	productID := chi.URLParam(r, "productID")
	color := r.URL.Query().Get("color")

	if err := h.store.Carts.RemoveLine(r.Context(), claims.UserID, productID, color); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update cart", err)
		return
	}

	cart, err := h.store.Carts.Get(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load cart", err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// HandleClearCart empties the buyer's cart.
// DELETE /api/v1/cart
func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if err := h.store.Carts.Clear(r.Context(), claims.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to clear cart", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
