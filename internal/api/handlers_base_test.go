// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/leviz2304/bazaar/internal/auth"
	"github.com/leviz2304/bazaar/internal/checkout"
	"github.com/leviz2304/bazaar/internal/config"
	"github.com/leviz2304/bazaar/internal/gateway"
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// testEnv bundles everything a handler test needs.
type testEnv struct {
	router  http.Handler
	store   *store.Store
	jwt     *auth.JWTManager
	gateway *gateway.Client
	cfg     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Security: config.SecurityConfig{
			JWTSecret:         "0123456789abcdef0123456789abcdef",
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		Gateway: config.GatewayConfig{
			BaseURL:         "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			MerchantCode:    "TESTMERCH",
			HashSecret:      "test-hash-secret",
			ReturnURL:       "https://shop.example.com/api/v1/payments/callback",
			Version:         "2.1.0",
			Command:         "pay",
			CurrencyCode:    "VND",
			Locale:          "vn",
			OrderType:       "other",
			SuccessRedirect: "https://shop.example.com/order-success",
			FailureRedirect: "https://shop.example.com/order-failed",
		},
		Checkout: config.CheckoutConfig{DeliveryCharge: 500},
		API:      config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
	}

	st := store.New(db)
	gw := gateway.NewClient(cfg.Gateway)
	svc := checkout.NewService(st, gw, cfg.Checkout)
	jwt, err := auth.NewJWTManager(cfg.Security)
	require.NoError(t, err)

	handler := NewHandler(st, svc, gw, jwt, cfg)
	return &testEnv{
		router:  NewRouter(handler).Setup(),
		store:   st,
		jwt:     jwt,
		gateway: gw,
		cfg:     cfg,
	}
}

// seedUser creates an account directly in the store and returns a
// bearer token for it.
func (e *testEnv) seedUser(t *testing.T, id string, role models.Role) string {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, e.store.Users.Create(context.Background(), &models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: hash,
		Name:         "User " + id,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}))
	token, err := e.jwt.GenerateToken(id, role)
	require.NoError(t, err)
	return token
}

// do performs a request against the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "success", envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorCode extracts the error code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error *models.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}
