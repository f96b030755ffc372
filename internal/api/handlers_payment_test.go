// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviz2304/bazaar/internal/gateway"
	"github.com/leviz2304/bazaar/internal/models"
)

// seedGatewayOrder persists an unpaid gateway order directly.
func seedGatewayOrder(t *testing.T, e *testEnv, id string) {
	t.Helper()
	require.NoError(t, e.store.Orders.Create(context.Background(), &models.Order{
		ID:            id,
		BuyerID:       "buyer-1",
		StoreID:       "store-1",
		Amount:        2500,
		PaymentMethod: models.PaymentGateway,
		Status:        models.StatusOrderPlaced,
		CreatedAt:     time.Now().UTC(),
	}))
}

// signedCallbackQuery builds a callback query signed with the test
// secret.
func signedCallbackQuery(e *testEnv, orderID, responseCode string, tamper func(url.Values)) string {
	params := gateway.Params{
		"vnp_Amount":       "2500",
		"vnp_TxnRef":       orderID,
		"vnp_ResponseCode": responseCode,
		"vnp_TmnCode":      e.cfg.Gateway.MerchantCode,
	}
	sig := gateway.Sign(params, e.cfg.Gateway.HashSecret)

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("vnp_SecureHash", sig)
	if tamper != nil {
		tamper(q)
	}
	return q.Encode()
}

func TestPaymentCallbackSuccess(t *testing.T) {
	e := newTestEnv(t)
	seedGatewayOrder(t, e, "order-1")

	query := signedCallbackQuery(e, "order-1", "00", nil)
	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.cfg.Gateway.SuccessRedirect, rec.Header().Get("Location"))

	order, err := e.store.Orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.Paid)
	assert.Equal(t, models.StatusPaid, order.Status)
}

func TestPaymentCallbackFailureCode(t *testing.T) {
	e := newTestEnv(t)
	seedGatewayOrder(t, e, "order-1")

	query := signedCallbackQuery(e, "order-1", "24", nil)
	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.cfg.Gateway.FailureRedirect, rec.Header().Get("Location"))

	order, err := e.store.Orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.False(t, order.Paid)
	assert.Equal(t, models.StatusPaymentFailed, order.Status)
}

func TestPaymentCallbackTamperedAmountFailsClosed(t *testing.T) {
	e := newTestEnv(t)
	seedGatewayOrder(t, e, "order-1")

	// Amount altered after signing; the signature no longer matches.
	query := signedCallbackQuery(e, "order-1", "00", func(q url.Values) {
		q.Set("vnp_Amount", "1")
	})
	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.cfg.Gateway.FailureRedirect, rec.Header().Get("Location"))

	// The order must be untouched despite responseCode "00".
	order, err := e.store.Orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.False(t, order.Paid)
	assert.False(t, order.Settled)
	assert.Equal(t, models.StatusOrderPlaced, order.Status)
}

func TestPaymentCallbackMissingSignatureFailsClosed(t *testing.T) {
	e := newTestEnv(t)
	seedGatewayOrder(t, e, "order-1")

	query := signedCallbackQuery(e, "order-1", "00", func(q url.Values) {
		q.Del("vnp_SecureHash")
	})
	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.cfg.Gateway.FailureRedirect, rec.Header().Get("Location"))

	order, err := e.store.Orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.False(t, order.Paid)
}

func TestPaymentCallbackUnknownOrder(t *testing.T) {
	e := newTestEnv(t)

	query := signedCallbackQuery(e, "ghost-order", "00", nil)
	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.cfg.Gateway.FailureRedirect, rec.Header().Get("Location"))
}

func TestPaymentCallbackIdempotentRedelivery(t *testing.T) {
	e := newTestEnv(t)
	seedGatewayOrder(t, e, "order-1")

	query := signedCallbackQuery(e, "order-1", "00", nil)

	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)
	assert.Equal(t, e.cfg.Gateway.SuccessRedirect, rec.Header().Get("Location"))

	// The gateway may redeliver the identical callback.
	rec = e.do(t, http.MethodGet, "/api/v1/payments/callback?"+query, "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.cfg.Gateway.SuccessRedirect, rec.Header().Get("Location"))

	order, err := e.store.Orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.Paid)
}

func TestPaymentCallbackStaleFailureDoesNotRevertPaid(t *testing.T) {
	e := newTestEnv(t)
	seedGatewayOrder(t, e, "order-1")

	success := signedCallbackQuery(e, "order-1", "00", nil)
	rec := e.do(t, http.MethodGet, "/api/v1/payments/callback?"+success, "", nil)
	assert.Equal(t, e.cfg.Gateway.SuccessRedirect, rec.Header().Get("Location"))

	// An out-of-order failure callback arrives after the success.
	stale := signedCallbackQuery(e, "order-1", "24", nil)
	rec = e.do(t, http.MethodGet, "/api/v1/payments/callback?"+stale, "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	// The buyer is routed by the stored state, which stays paid.
	assert.Equal(t, e.cfg.Gateway.SuccessRedirect, rec.Header().Get("Location"))

	order, err := e.store.Orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.Paid)
	assert.Equal(t, models.StatusPaid, order.Status)
}
