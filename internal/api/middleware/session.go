package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/apdc/auth-api/internal/api/metrics"
	"github.com/apdc/auth-api/internal/core/domain"
	"github.com/apdc/auth-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the raw session token.
const SessionCookie = "session::apdc"

// PrincipalKey is the echo context key the Session middleware stores
// the authenticated Principal under.
const PrincipalKey = "principal"

// Session reads the session cookie, authenticates it and attaches the
// resulting Principal to the request context. It never fails the
// request itself: a missing, tampered or expired cookie simply leaves
// no principal behind, and the role check downstream turns that into a
// 403. Tampered and malformed tokens are indistinguishable to the
// client.
func Session(auth ports.SessionService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var raw string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				raw = cookie.Value
			}
			if raw == "" {
				metrics.SessionsVerifiedTotal.WithLabelValues("no_token").Inc()
				return next(c)
			}

			principal, err := auth.Authenticate(c.Request().Context(), raw)
			switch {
			case err != nil:
				outcome := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					outcome = "expired"
				}
				metrics.SessionsVerifiedTotal.WithLabelValues(outcome).Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("session rejected")
			case principal != nil:
				metrics.SessionsVerifiedTotal.WithLabelValues("valid").Inc()
				c.Set(PrincipalKey, principal)
			}

			return next(c)
		}
	}
}

// CurrentPrincipal returns the Principal attached by Session, or nil.
func CurrentPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}
