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
	"github.com/leviz2304/bazaar/internal/logging"
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// sellerStore resolves the authenticated seller's store. Writes the
// error response and returns nil when the seller has no store yet.
func (h *Handler) sellerStore(w http.ResponseWriter, r *http.Request) *models.Store {
	claims := auth.ClaimsFromContext(r.Context())
	s, err := h.store.Stores.GetByOwner(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "no store registered for this account", nil)
			return nil
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load store", err)
		return nil
	}
	return s
}

// HandleCreateStore registers a store for the authenticated user and
// promotes the account to the seller role.
// POST /api/v1/seller/store
func (h *Handler) HandleCreateStore(w http.ResponseWriter, r *http.Request) {
	var req StoreCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if _, err := h.store.Stores.GetByOwner(r.Context(), claims.UserID); err == nil {
		respondError(w, http.StatusConflict, "CONFLICT", "account already owns a store", nil)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to check store ownership", err)
		return
	}

	s := &models.Store{
		ID:          uuid.NewString(),
		OwnerID:     claims.UserID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Logo:        req.Logo,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.Stores.Create(r.Context(), s); err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			respondError(w, http.StatusConflict, "CONFLICT", "store slug already taken", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create store", err)
		return
	}

	user, err := h.store.Users.Get(r.Context(), claims.UserID)
	if err == nil {
		user.Role = models.RoleSeller
		user.StoreID = s.ID
		if err := h.store.Users.Update(r.Context(), user); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).
				Str("user_id", user.ID).
				Msg("store created but role promotion failed")
		}
	}

	logging.Ctx(r.Context()).Info().
		Str("store_id", s.ID).Str("owner_id", claims.UserID).
		Msg("store registered")
	respondData(w, http.StatusCreated, s)
}

// HandleGetMyStore returns the seller's store.
// GET /api/v1/seller/store
func (h *Handler) HandleGetMyStore(w http.ResponseWriter, r *http.Request) {
	s := h.sellerStore(w, r)
	if s == nil {
		return
	}
	respondData(w, http.StatusOK, s)
}

// HandleUpdateMyStore updates name, description and logo. Slug and
// owner are immutable.
// PUT /api/v1/seller/store
func (h *Handler) HandleUpdateMyStore(w http.ResponseWriter, r *http.Request) {
	var req StoreUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s := h.sellerStore(w, r)
	if s == nil {
		return
	}

	s.Name = req.Name
	s.Description = req.Description
	s.Logo = req.Logo
	if err := h.store.Stores.Update(r.Context(), s); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update store", err)
		return
	}
	respondData(w, http.StatusOK, s)
}

// HandleCreateProduct adds a product to the seller's store.
// POST /api/v1/seller/products
func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s := h.sellerStore(w, r)
	if s == nil {
		return
	}

	p := &models.Product{
		ID:          uuid.NewString(),
		StoreID:     s.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Colors:      req.Colors,
		Images:      req.Images,
		InStock:     req.InStock,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.Products.Create(r.Context(), p); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create product", err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

// HandleListMyProducts returns the seller's own catalog, including
// out-of-stock entries.
// GET /api/v1/seller/products
func (h *Handler) HandleListMyProducts(w http.ResponseWriter, r *http.Request) {
	s := h.sellerStore(w, r)
	if s == nil {
		return
	}

	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))
	products, total, err := h.store.Products.List(r.Context(), models.ProductFilter{
		StoreID: s.ID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondData(w, http.StatusOK, models.Page{Items: products, Total: total, Limit: limit, Offset: offset})
}

// ownedProduct loads a product and checks it belongs to the seller's
// store. Writes the error response and returns nil on any failure.
func (h *Handler) ownedProduct(w http.ResponseWriter, r *http.Request, storeID string) *models.Product {
	p, err := h.store.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return nil
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load product", err)
		return nil
	}
	if p.StoreID != storeID {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return nil
	}
	return p
}

// HandleUpdateProduct replaces the mutable fields of one of the
// seller's products.
// PUT /api/v1/seller/products/{id}
func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s := h.sellerStore(w, r)
	if s == nil {
		return
	}
	p := h.ownedProduct(w, r, s.ID)
	if p == nil {
		return
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Category = req.Category
	p.Colors = req.Colors
	p.Images = req.Images
	p.InStock = req.InStock
	if err := h.store.Products.Update(r.Context(), p); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update product", err)
		return
	}
	respondData(w, http.StatusOK, p)
}

// HandleDeleteProduct removes one of the seller's products. Existing
// orders keep their snapshots.
// DELETE /api/v1/seller/products/{id}
func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	s := h.sellerStore(w, r)
	if s == nil {
		return
	}
	p := h.ownedProduct(w, r, s.ID)
	if p == nil {
		return
	}

	if err := h.store.Products.Delete(r.Context(), p.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete product", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// HandleListStoreOrders returns orders placed against the seller's
// store.
// GET /api/v1/seller/orders
func (h *Handler) HandleListStoreOrders(w http.ResponseWriter, r *http.Request) {
	s := h.sellerStore(w, r)
	if s == nil {
		return
	}

	limit, offset := h.pageParams(getIntParam(r, "limit", 0), getIntParam(r, "offset", 0))
	orders, total, err := h.store.Orders.List(r.Context(), models.OrderFilter{
		StoreID: s.ID,
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

// HandleUpdateOrderStatus sets the fulfilment status on one of the
// store's orders. Payment fields are untouched; a settled payment
// outcome cannot be changed here.
// PUT /api/v1/seller/orders/{id}/status
func (h *Handler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s := h.sellerStore(w, r)
	if s == nil {
		return
	}

	order, err := h.store.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load order", err)
		return
	}
	if order.StoreID != s.ID {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}

	if err := h.store.Orders.UpdateStatus(r.Context(), order.ID, req.Status); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update order", err)
		return
	}

	order.Status = req.Status
	respondData(w, http.StatusOK, order)
}
