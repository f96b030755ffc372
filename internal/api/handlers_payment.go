// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"errors"
	"net/http"

	"github.com/leviz2304/bazaar/internal/gateway"
	"github.com/leviz2304/bazaar/internal/logging"
	"github.com/leviz2304/bazaar/internal/metrics"
	"github.com/leviz2304/bazaar/internal/store"
)

// HandlePaymentCallback receives the gateway's return redirect via the
// buyer's browser. The signature is verified before the response code
// is read; any mismatch leaves the order untouched and sends the buyer
// to the failure page. This endpoint answers with a 302, never JSON,
// because the caller is a browser mid-redirect.
// GET /api/v1/payments/callback
func (h *Handler) HandlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.VerifyCallback(r.URL.Query())
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrSignatureMismatch):
			metrics.RecordPaymentCallback("signature_mismatch")
			logging.Ctx(r.Context()).Warn().
				Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).
				Msg("payment callback rejected: signature mismatch")
		default:
			metrics.RecordPaymentCallback("invalid")
			logging.Ctx(r.Context()).Warn().Err(err).Msg("payment callback rejected")
		}
		http.Redirect(w, r, h.cfg.Gateway.FailureRedirect, http.StatusFound)
		return
	}

	if err := h.checkout.Settle(r.Context(), result); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			metrics.RecordPaymentCallback("not_found")
			logging.Ctx(r.Context()).Warn().
				Str("order_id", sanitizeLogValue(result.OrderID)).
				Msg("payment callback for unknown order")
			http.Redirect(w, r, h.cfg.Gateway.FailureRedirect, http.StatusFound)
			return
		case errors.Is(err, store.ErrOrderSettled):
			// Stale duplicate with a conflicting outcome; the order
			// keeps its terminal state. Send the buyer to the page
			// matching the stored state, not the stale callback.
			metrics.RecordPaymentCallback("stale")
			h.redirectByStoredState(w, r, result.OrderID)
			return
		}
		metrics.RecordPaymentCallback("error")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to settle payment", err)
		return
	}

	if result.Success {
		metrics.RecordPaymentCallback("paid")
		http.Redirect(w, r, h.cfg.Gateway.SuccessRedirect, http.StatusFound)
		return
	}
	metrics.RecordPaymentCallback("failed")
	http.Redirect(w, r, h.cfg.Gateway.FailureRedirect, http.StatusFound)
}

func (h *Handler) redirectByStoredState(w http.ResponseWriter, r *http.Request, orderID string) {
	order, err := h.store.Orders.Get(r.Context(), orderID)
	if err == nil && order.Paid {
		http.Redirect(w, r, h.cfg.Gateway.SuccessRedirect, http.StatusFound)
		return
	}
	http.Redirect(w, r, h.cfg.Gateway.FailureRedirect, http.StatusFound)
}
