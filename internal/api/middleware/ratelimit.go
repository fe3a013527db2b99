package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teconect/accounts-api/internal/api/metrics"
)

// Limiter is the slice of the redis rate limiter the middleware needs.
type Limiter interface {
	Allow(ctx context.Context, scope, caller string, limit int) (bool, error)
}

// RateLimit applies a fixed-window per-IP limit to the wrapped routes. Each
// route tier gets its own scope so the windows do not interfere. When the
// limiter backend is unreachable the middleware fails open: availability
// over throttling.
func RateLimit(limiter Limiter, scope string, limit int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), scope, c.RealIP(), limit)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
