// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

// Package metrics provides Prometheus instrumentation for the API and
// the commerce domain. Metrics are exposed at /metrics in Prometheus
// text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Order Metrics
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders placed at checkout",
		},
		[]string{"payment_method"},
	)

	OrderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_amount_minor_units",
			Help:    "Order totals in minor currency units",
			Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000, 500000},
		},
	)

	CheckoutRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_rejections_total",
			Help: "Total number of checkouts rejected by validation",
		},
		[]string{"reason"}, // "empty_cart", "mixed_stores", "address", "other"
	)

	// Payment Callback Metrics
	PaymentCallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_callbacks_total",
			Help: "Total number of gateway return callbacks processed",
		},
		[]string{"result"}, // "paid", "failed", "signature_mismatch", "not_found", "stale"
	)

	SignatureMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_signature_mismatches_total",
			Help: "Total number of callbacks rejected for an invalid signature",
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordOrderCreated records a successful checkout.
func RecordOrderCreated(paymentMethod string, amount int64) {
	OrdersCreated.WithLabelValues(paymentMethod).Inc()
	OrderAmount.Observe(float64(amount))
}

// RecordCheckoutRejection records a checkout refused by validation.
func RecordCheckoutRejection(reason string) {
	CheckoutRejections.WithLabelValues(reason).Inc()
}

// RecordPaymentCallback records one processed gateway callback.
func RecordPaymentCallback(result string) {
	PaymentCallbacks.WithLabelValues(result).Inc()
	if result == "signature_mismatch" {
		SignatureMismatches.Inc()
	}
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
