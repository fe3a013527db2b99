package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teconect/accounts-api/internal/core/service"
)

// RBAC enforces role-based access control on the user resolved by Auth.
// Always chained after Auth: role is only meaningful for an authenticated,
// active user.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if err := service.RequireRole(user, allowedRoles...); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "not enough permissions"})
			}
			return next(c)
		}
	}
}
