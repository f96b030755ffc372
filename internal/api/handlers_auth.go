// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/leviz2304/bazaar/internal/auth"
	"github.com/leviz2304/bazaar/internal/logging"
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// HandleRegister creates a buyer account and returns a bearer token.
// POST /api/v1/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to process registration", err)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleBuyer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "CONFLICT", "email already registered", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create account", err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("account registered")
	respondData(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user.Profile(),
	})
}

// HandleLogin authenticates by email and password.
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.store.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same response as a wrong password; no account probing.
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load account", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logging.Ctx(r.Context()).Warn().Str("user_id", user.ID).Msg("failed login attempt")
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password", nil)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token", err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Profile(),
	})
}

// HandleMe returns the authenticated user's profile.
// GET /api/v1/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	user, err := h.store.Users.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "account no longer exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load account", err)
		return
	}
	respondData(w, http.StatusOK, user.Profile())
}
