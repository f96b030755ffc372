// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

// Package config defines the application configuration and its loader.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, optional YAML config file,
// built-in defaults. The resulting Config struct is passed explicitly
// into every constructor that needs it; nothing reads ambient globals,
// so tests can inject their own secrets and URLs.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Gateway  GatewayConfig  `koanf:"gateway"`
	Checkout CheckoutConfig `koanf:"checkout"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds the embedded document store settings.
type DatabaseConfig struct {
	// Path is the BadgerDB directory. Empty with InMemory=true runs
	// fully in memory (tests).
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs bearer tokens. Minimum 32 characters.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// GatewayConfig holds the payment gateway contract parameters.
// Field names in the redirect URL are a contract with the gateway and
// must remain stable; everything here is injected at construction time
// so tests can sign with a test secret.
type GatewayConfig struct {
	// BaseURL is the gateway's hosted payment page.
	BaseURL string `koanf:"base_url"`

	// MerchantCode is the registered merchant identifier (vnp_TmnCode).
	MerchantCode string `koanf:"merchant_code"`

	// HashSecret is the shared HMAC-SHA512 signing key.
	HashSecret string `koanf:"hash_secret"`

	// ReturnURL is the registered callback URL the gateway redirects to.
	ReturnURL string `koanf:"return_url"`

	Version      string `koanf:"version"`
	Command      string `koanf:"command"`
	CurrencyCode string `koanf:"currency_code"`
	Locale       string `koanf:"locale"`
	OrderType    string `koanf:"order_type"`

	// SuccessRedirect and FailureRedirect are the front-end pages the
	// callback handler 302s the buyer's browser to.
	SuccessRedirect string `koanf:"success_redirect"`
	FailureRedirect string `koanf:"failure_redirect"`
}

// CheckoutConfig holds order placement policy settings.
type CheckoutConfig struct {
	// DeliveryCharge is the fixed surcharge added to every order,
	// in minor currency units.
	DeliveryCharge int64 `koanf:"delivery_charge"`
}

// APIConfig holds pagination defaults for list endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would make the
// server unsafe or unable to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}

	if c.Gateway.HashSecret == "" {
		return fmt.Errorf("gateway.hash_secret is required")
	}
	if c.Gateway.MerchantCode == "" {
		return fmt.Errorf("gateway.merchant_code is required")
	}
	for name, raw := range map[string]string{
		"gateway.base_url":   c.Gateway.BaseURL,
		"gateway.return_url": c.Gateway.ReturnURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if c.Checkout.DeliveryCharge < 0 {
		return fmt.Errorf("checkout.delivery_charge must not be negative")
	}

	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size must be between 1 and api.max_page_size")
	}

	return nil
}
