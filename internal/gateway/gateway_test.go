// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package gateway

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviz2304/bazaar/internal/config"
)

func testConfig() config.GatewayConfig {
	return config.GatewayConfig{
		BaseURL:      "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		MerchantCode: "TESTMERCH",
		HashSecret:   "test-hash-secret",
		ReturnURL:    "https://shop.example.com/api/v1/payments/callback",
		Version:      "2.1.0",
		Command:      "pay",
		CurrencyCode: "VND",
		Locale:       "vn",
		OrderType:    "other",
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	p := Params{"zeta": "1", "alpha": "2", "Beta": "3", "beta": "4"}

	first := Canonicalize(p)
	second := Canonicalize(p)
	assert.Equal(t, first, second)

	// Byte-wise ordering: uppercase sorts before lowercase.
	assert.Equal(t, []string{"Beta", "alpha", "beta", "zeta"}, first)
}

func TestSignDeterministicAndTamperSensitive(t *testing.T) {
	p := Params{
		"vnp_Amount": "2500",
		"vnp_TxnRef": "order-1",
	}

	sig := Sign(p, "secret")
	assert.Equal(t, sig, Sign(p, "secret"))
	assert.Len(t, sig, 128)
	assert.Equal(t, strings.ToLower(sig), sig)

	// Any single value change changes the digest.
	tampered := Params{"vnp_Amount": "9900", "vnp_TxnRef": "order-1"}
	assert.NotEqual(t, sig, Sign(tampered, "secret"))

	// Insertion order of the map never matters; only content does.
	reordered := Params{"vnp_TxnRef": "order-1", "vnp_Amount": "2500"}
	assert.Equal(t, sig, Sign(reordered, "secret"))

	// A different key yields a different digest.
	assert.NotEqual(t, sig, Sign(p, "other-secret"))
}

func TestBuildPaymentURL(t *testing.T) {
	c := NewClient(testConfig())

	raw := c.BuildPaymentURL(PaymentRequest{
		OrderID:   "order-42",
		Amount:    2500,
		OrderInfo: "Bazaar order order-42",
		ClientIP:  "203.0.113.9",
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sandbox.vnpayment.vn", u.Host)

	q := u.Query()
	assert.Equal(t, "order-42", q.Get("vnp_TxnRef"))
	assert.Equal(t, "2500", q.Get("vnp_Amount"))
	assert.Equal(t, "VND", q.Get("vnp_CurrCode"))
	assert.Equal(t, "20260314092653", q.Get("vnp_CreateDate"))
	assert.Equal(t, "TESTMERCH", q.Get("vnp_TmnCode"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// The URL must verify with the same secret it was signed with.
	result, err := c.VerifyCallback(q)
	require.NoError(t, err)
	assert.Equal(t, "order-42", result.OrderID)
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	cfg := testConfig()
	c := NewClient(cfg)

	params := Params{
		"vnp_Amount":       "2500",
		"vnp_TxnRef":       "order-42",
		"vnp_ResponseCode": "00",
	}
	sig := Sign(params, cfg.HashSecret)

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("vnp_SecureHash", sig)

	result, err := c.VerifyCallback(q)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "order-42", result.OrderID)
	assert.Equal(t, "00", result.ResponseCode)
}

func TestVerifyCallbackFailureCode(t *testing.T) {
	cfg := testConfig()
	c := NewClient(cfg)

	params := Params{
		"vnp_TxnRef":       "order-42",
		"vnp_ResponseCode": "24", // buyer cancelled
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("vnp_SecureHash", Sign(params, cfg.HashSecret))

	result, err := c.VerifyCallback(q)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "24", result.ResponseCode)
}

func TestVerifyCallbackRejectsTampering(t *testing.T) {
	cfg := testConfig()
	c := NewClient(cfg)

	params := Params{
		"vnp_Amount":       "2500",
		"vnp_TxnRef":       "order-42",
		"vnp_ResponseCode": "00",
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("vnp_SecureHash", Sign(params, cfg.HashSecret))

	// Simulated man-in-the-middle edit after signing.
	q.Set("vnp_Amount", "100")

	result, err := c.VerifyCallback(q)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Nil(t, result)
}

func TestVerifyCallbackMissingSignature(t *testing.T) {
	c := NewClient(testConfig())

	q := url.Values{}
	q.Set("vnp_TxnRef", "order-42")
	q.Set("vnp_ResponseCode", "00")

	_, err := c.VerifyCallback(q)
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerifyCallbackMissingTxnRef(t *testing.T) {
	cfg := testConfig()
	c := NewClient(cfg)

	params := Params{"vnp_ResponseCode": "00"}
	q := url.Values{}
	q.Set("vnp_ResponseCode", "00")
	q.Set("vnp_SecureHash", Sign(params, cfg.HashSecret))

	_, err := c.VerifyCallback(q)
	assert.ErrorIs(t, err, ErrMissingTxnRef)
}
