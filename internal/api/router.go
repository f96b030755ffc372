// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leviz2304/bazaar/internal/auth"
	"github.com/leviz2304/bazaar/internal/middleware"
	"github.com/leviz2304/bazaar/internal/models"
)

// Router builds the chi route tree over a Handler.
type Router struct {
	handler *Handler
}

func NewRouter(h *Handler) *Router {
	return &Router{handler: h}
}

// Setup wires all routes with their middleware stacks.
//
// Route groups and their protection:
//
//	/health, /metrics                   public, unauthenticated
//	/api/v1/auth/*                      public, strict rate limit
//	/api/v1/products (GET)              public storefront, standard limit
//	/api/v1/payments/callback           public, reached via the gateway redirect
//	/api/v1/cart, /api/v1/orders        authenticated buyer
//	/api/v1/seller/*                    authenticated; store creation open to
//	                                    any account, everything else seller-gated
//	/api/v1/admin/*                     admin role only
func (rt *Router) Setup() http.Handler {
	cfg := rt.handler.cfg
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", rt.handler.HandleHealth)
	r.Get("/health/live", rt.handler.HandleHealthLive)
	r.Get("/health/ready", rt.handler.HandleHealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	standardLimit := rt.rateLimit(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow)
	authLimit := rt.rateLimit(10, time.Minute)

	authenticate := auth.Middleware(rt.handler.jwt)
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Account registration and login. Tight limit against credential
	// stuffing.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(authLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Post("/register", rt.handler.HandleRegister)
		r.Post("/login", rt.handler.HandleLogin)
		r.With(authenticate).Get("/me", rt.handler.HandleMe)
	})

	// Public storefront.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(standardLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Get("/", rt.handler.HandleListProducts)
		r.Get("/{id}", rt.handler.HandleGetProduct)
		r.Get("/{id}/reviews", rt.handler.HandleListReviews)
		r.With(authenticate).Post("/{id}/reviews", rt.handler.HandleCreateReview)
	})

	// Gateway return callback. Public: the buyer's browser arrives here
	// from the gateway, carrying the signed query string.
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Use(standardLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Get("/callback", rt.handler.HandlePaymentCallback)
	})

	// Buyer cart and orders.
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(standardLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Use(authenticate)
		r.Get("/", rt.handler.HandleGetCart)
		r.Delete("/", rt.handler.HandleClearCart)
		r.Post("/items", rt.handler.HandleAddCartLine)
		r.Delete("/items/{productID}", rt.handler.HandleRemoveCartLine)
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(standardLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Use(authenticate)
		r.Post("/", rt.handler.HandleCheckout)
		r.Get("/", rt.handler.HandleListMyOrders)
		r.Get("/{id}", rt.handler.HandleGetOrder)
	})

	// Seller console. Store creation is open to any authenticated
	// account and promotes it to seller; the rest requires the role.
	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(standardLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Use(authenticate)

		r.Post("/store", rt.handler.HandleCreateStore)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleSeller))
			r.Get("/store", rt.handler.HandleGetMyStore)
			r.Put("/store", rt.handler.HandleUpdateMyStore)
			r.Get("/products", rt.handler.HandleListMyProducts)
			r.Post("/products", rt.handler.HandleCreateProduct)
			r.Put("/products/{id}", rt.handler.HandleUpdateProduct)
			r.Delete("/products/{id}", rt.handler.HandleDeleteProduct)
			r.Get("/orders", rt.handler.HandleListStoreOrders)
			r.Put("/orders/{id}/status", rt.handler.HandleUpdateOrderStatus)
		})
	})

	// Admin surface.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(standardLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Get("/users", rt.handler.HandleAdminListUsers)
		r.Get("/stores", rt.handler.HandleAdminListStores)
		r.Get("/orders", rt.handler.HandleAdminListOrders)
	})

	return r
}

// rateLimit returns an IP-keyed limiter, or a pass-through when rate
// limiting is disabled (tests, local dev).
func (rt *Router) rateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if rt.handler.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	if requests <= 0 {
		requests = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return httprate.LimitByIP(requests, window)
}
