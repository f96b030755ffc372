// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leviz2304/bazaar/internal/auth"
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// HandleListProducts returns the public catalog with optional
// filtering: store, category, free-text search and a price range.
// GET /api/v1/products
func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))

	filter := models.ProductFilter{
		StoreID:  r.URL.Query().Get("store_id"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		MinPrice: getInt64Param(r, "min_price", 0),
		MaxPrice: getInt64Param(r, "max_price", 0),
		Limit:    limit,
		Offset:   offset,
	}

	products, total, err := h.store.Products.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	respondData(w, http.StatusOK, models.Page{Items: products, Total: total, Limit: limit, Offset: offset})
}

// HandleGetProduct returns one product by ID.
// GET /api/v1/products/{id}
func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load product", err)
		return
	}
	respondData(w, http.StatusOK, product)
}

// HandleListReviews returns all reviews for a product, newest first.
// GET /api/v1/products/{id}/reviews
func (h *Handler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if _, err := h.store.Products.Get(r.Context(), productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load product", err)
		return
	}

	reviews, err := h.store.Reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list reviews", err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondData(w, http.StatusOK, reviews)
}

// HandleCreateReview adds a review by the authenticated buyer.
// POST /api/v1/products/{id}/reviews
func (h *Handler) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	productID := chi.URLParam(r, "id")
	if _, err := h.store.Products.Get(r.Context(), productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load product", err)
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	user, err := h.store.Users.Get(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load account", err)
		return
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		BuyerID:   user.ID,
		BuyerName: user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Reviews.Create(r.Context(), review); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to save review", err)
		return
	}
	respondData(w, http.StatusCreated, review)
}
