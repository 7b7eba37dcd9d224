package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	clientsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clients_registered_total",
			Help: "Total number of clients registered through the funnel",
		},
		[]string{"portal"},
	)

	linkClicksRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "link_clicks_recorded_total",
			Help: "Total number of referral link clicks recorded",
		},
	)
)

// Metrics records request counts and latency per route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		// Route pattern, not the raw path, to keep cardinality bounded.
		path := c.Route().Path

		httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

func RecordClientRegistered(portal string) {
	if portal == "" {
		portal = "direct"
	}
	clientsRegistered.WithLabelValues(portal).Inc()
}

func RecordLinkClick() {
	linkClicksRecorded.Inc()
}
