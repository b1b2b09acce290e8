package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of cart mutations by operation",
	}, []string{"op"})

	CartRehydrateFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_rehydrate_failures_total",
		Help: "Total number of carts that fell back to empty on load",
	}, []string{"reason"})

	CartPersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Total number of failed cart writes to durable storage",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	CheckoutRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Total number of rejected checkout submissions",
	}, []string{"reason"})

	PaymentAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_attempts_total",
		Help: "Total number of simulated payment round trips",
	}, []string{"method"})

	PaymentProcessingLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_processing_latency_seconds",
		Help:    "Latency of the simulated payment round trip",
		Buckets: prometheus.DefBuckets,
	})

	ReceiptNotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "receipt_notifications_failed_total",
		Help: "Total number of receipt notifications that could not be sent",
	})

	ConciergeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_requests_total",
		Help: "Total number of concierge calls by operation and result",
	}, []string{"op", "result"})

	ConciergeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "concierge_latency_seconds",
		Help:    "Latency of concierge provider calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_active_sessions",
		Help: "Number of visitor sessions held in memory",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
