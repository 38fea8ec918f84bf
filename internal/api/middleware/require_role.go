package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/apdc/auth-api/internal/api/metrics"
	"github.com/apdc/auth-api/internal/core/domain"
	"github.com/apdc/auth-api/internal/core/ports"
)

// RequireRole gates a route behind a minimum role. The denial is 403
// in every case, including when no session cookie was presented at
// all; the API deliberately answers "forbidden" rather than
// "unauthorized" on protected routes.
func RequireRole(auth ports.SessionService, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.Authorize(CurrentPrincipal(c), required) {
				metrics.AccessDeniedTotal.WithLabelValues(required.String()).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
