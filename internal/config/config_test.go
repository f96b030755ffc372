// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Gateway.MerchantCode = "TESTMERCH"
	cfg.Gateway.HashSecret = "test-hash-secret"
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Security.JWTSecret = "short"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidateRejectsMissingGatewaySecret(t *testing.T) {
	cfg := validConfig()
	cfg.Gateway.HashSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsRelativeGatewayURL(t *testing.T) {
	cfg := validConfig()
	cfg.Gateway.ReturnURL = "/api/v1/payments/callback"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute URL")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeDeliveryCharge(t *testing.T) {
	cfg := validConfig()
	cfg.Checkout.DeliveryCharge = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("GATEWAY_MERCHANT_CODE", "ENVMERCH")
	t.Setenv("GATEWAY_HASH_SECRET", "env-hash-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DELIVERY_CHARGE", "750")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "ENVMERCH", cfg.Gateway.MerchantCode)
	assert.Equal(t, int64(750), cfg.Checkout.DeliveryCharge)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.CORSOrigins)
}

func TestEnvTransformDropsUnknownKeys(t *testing.T) {
	assert.Equal(t, "", envTransformFunc("PATH"))
	assert.Equal(t, "", envTransformFunc("RANDOM_NOISE"))
	assert.Equal(t, "server.port", envTransformFunc("HTTP_PORT"))
	assert.Equal(t, "gateway.hash_secret", envTransformFunc("GATEWAY_HASH_SECRET"))
}
