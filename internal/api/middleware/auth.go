package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teconect/accounts-api/internal/api/metrics"
	"github.com/teconect/accounts-api/internal/core/domain"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// userContextKey is where Auth stores the resolved *domain.User.
const userContextKey = "current_user"

// Auth extracts the bearer token, resolves it through the authentication
// gate (which also refreshes the user's liveness heartbeat), and injects the
// resolved user into the echo context.
func Auth(gate ports.AuthGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := gate.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUserSuspended):
					metrics.TokenResolutionsTotal.WithLabelValues("suspended").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "user account is suspended")
				case errors.Is(err, domain.ErrInvalidToken):
					metrics.TokenResolutionsTotal.WithLabelValues("invalid_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				default:
					return err
				}
			}

			metrics.TokenResolutionsTotal.WithLabelValues("ok").Inc()
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil when the middleware
// did not run on this route.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
