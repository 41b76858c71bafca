package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rentique"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	rentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rents_created_total",
			Help:      "Rental bookings created.",
		},
	)

	rentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rent_transitions_total",
			Help:      "Rental status transitions by source and target status.",
		},
		[]string{"from", "to"},
	)

	rentConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rent_conflicts_total",
			Help:      "Rejected bookings because of an overlapping approved or active rental.",
		},
		[]string{"stage"},
	)

	reviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Reviews submitted for completed rentals.",
		},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		},
		[]string{"scope"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			rentsCreated,
			rentTransitions,
			rentConflicts,
			reviewsCreated,
			rateLimited,
		)
	})
}

// IncRentCreated counts a persisted booking.
func IncRentCreated() {
	rentsCreated.Inc()
}

// IncRentTransition counts a persisted status change.
func IncRentTransition(from, to string) {
	rentTransitions.WithLabelValues(from, to).Inc()
}

// IncRentConflict counts a conflict at "create" or "transition" stage.
func IncRentConflict(stage string) {
	rentConflicts.WithLabelValues(stage).Inc()
}

// IncReviewCreated counts a stored review.
func IncReviewCreated() {
	reviewsCreated.Inc()
}

// IncRateLimited counts a request rejected by the limiter for scope.
func IncRateLimited(scope string) {
	rateLimited.WithLabelValues(scope).Inc()
}

// GinMiddleware records request count and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
