package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apdc/auth-api/internal/api/middleware"
	"github.com/apdc/auth-api/internal/core/domain"
)

// SessionHandler serves the session-gated endpoints.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Me echoes back the authenticated principal.
//
// @Summary      Current session identity
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Principal
// @Failure      403  {object}  map[string]string
// @Router       /api/me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principal)
}

type timeResponse struct {
	Time string `json:"time"`
	Unix int64  `json:"unix"`
}

// Now returns the current server time. Admin only.
//
// @Summary      Current server time
// @Tags         session
// @Produce      json
// @Success      200  {object}  timeResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/time [get]
func (h *SessionHandler) Now(c echo.Context) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	now := time.Now().UTC()
	return c.JSON(http.StatusOK, timeResponse{
		Time: now.Format(time.RFC3339),
		Unix: now.Unix(),
	})
}

// requirePrincipal fetches the principal attached by the session
// middleware. Behind RequireRole it is always present; a miss means a
// route was wired without its guard, which still must read as 403.
func requirePrincipal(c echo.Context) (*domain.Principal, error) {
	if p := middleware.CurrentPrincipal(c); p != nil {
		return p, nil
	}
	return nil, domain.ErrForbidden
}
