package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wisker",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wisker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wisker",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Credit accounting metrics
	creditsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wisker",
			Subsystem: "credits",
			Name:      "consumed_total",
			Help:      "Total number of AI credits consumed",
		},
		[]string{"operation"},
	)

	creditDenialsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wisker",
			Subsystem: "credits",
			Name:      "denials_total",
			Help:      "Total number of operations denied for insufficient credits",
		},
	)

	// AI generation metrics
	aiGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wisker",
			Subsystem: "ai",
			Name:      "generations_total",
			Help:      "Total number of AI learning tool generations",
		},
		[]string{"tool_type", "status"},
	)

	aiGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wisker",
			Subsystem: "ai",
			Name:      "generation_duration_seconds",
			Help:      "Duration of AI generations in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// Payment metrics
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wisker",
			Subsystem: "payments",
			Name:      "webhook_events_total",
			Help:      "Total number of payment webhook events",
		},
		[]string{"event_type", "status"},
	)

	promoRedemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wisker",
			Subsystem: "payments",
			Name:      "promo_redemptions_total",
			Help:      "Total number of promo code redemptions",
		},
	)
)

// RecordCreditsConsumed records consumed credits for an operation
func RecordCreditsConsumed(operation string, amount int) {
	creditsConsumedTotal.WithLabelValues(operation).Add(float64(amount))
}

// RecordCreditDenial records an insufficient-credits denial
func RecordCreditDenial() {
	creditDenialsTotal.Inc()
}

// RecordGeneration records an AI generation attempt
func RecordGeneration(toolType, status string, duration time.Duration) {
	aiGenerationsTotal.WithLabelValues(toolType, status).Inc()
	aiGenerationDuration.Observe(duration.Seconds())
}

// RecordWebhookEvent records a payment webhook event
func RecordWebhookEvent(eventType, status string) {
	webhookEventsTotal.WithLabelValues(eventType, status).Inc()
}

// RecordPromoRedemption records a promo code redemption
func RecordPromoRedemption() {
	promoRedemptionsTotal.Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			// Use the route pattern rather than the raw path to bound cardinality
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := strconv.Itoa(ww.status)
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
