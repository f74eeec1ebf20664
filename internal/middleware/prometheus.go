package middleware

import (
	"strconv"
	"time"

	"photostudio/internal/metrics"

	"github.com/labstack/echo/v4"
)

const unmatchedPath = "unmatched"

// PrometheusMetrics records request counts and latency per route pattern.
// Errors are rendered here so the recorded status is the one sent.
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		duration := time.Since(start).Seconds()

		path := c.Path()
		if path == "" {
			path = unmatchedPath
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			path,
			strconv.Itoa(c.Response().Status),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			path,
		).Observe(duration)

		return nil
	}
}
