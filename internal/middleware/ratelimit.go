package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/metrics"
	"photostudio/internal/repository"
	"photostudio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Limiter allows at most limit requests per client IP within window. It
// fails open: with no store, or when the store errors, requests pass.
type Limiter struct {
	log    *slog.Logger
	repo   repository.RateLimitRepository
	scope  string
	limit  int64
	window time.Duration
}

func NewLimiter(log *slog.Logger, repo repository.RateLimitRepository, scope string, limit int64, window time.Duration) *Limiter {
	return &Limiter{
		log:    log,
		repo:   repo,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

func (l *Limiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if l.repo == nil || l.limit <= 0 {
			return next(c)
		}

		const op = "middleware.Limiter"

		ip := c.RealIP()

		n, err := l.repo.Hit(c.Request().Context(), ip, l.window)
		if err != nil {
			l.log.Warn("rate limit store unavailable, allowing request",
				slog.String("op", op),
				slog.String("scope", l.scope),
				sl.Err(err),
			)
			return next(c)
		}

		if n > l.limit {
			metrics.RateLimitedTotal.WithLabelValues(l.scope).Inc()
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			return echo.NewHTTPError(http.StatusTooManyRequests, response.CodeRateLimited)
		}

		return next(c)
	}
}
