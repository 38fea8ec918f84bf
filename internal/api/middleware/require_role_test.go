package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/apdc/auth-api/internal/core/domain"
)

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	stub := &stubSessionService{}

	cases := []struct {
		held     domain.Role
		required domain.Role
	}{
		{domain.RoleRegular, domain.RoleRegular},
		{domain.RoleBackoffice, domain.RoleRegular},
		{domain.RoleAdmin, domain.RoleRegular},
		{domain.RoleBackoffice, domain.RoleBackoffice},
		{domain.RoleAdmin, domain.RoleAdmin},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(PrincipalKey, &domain.Principal{Username: "u", Role: tc.held})

		called := false
		handler := RequireRole(stub, tc.required)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("%s vs %s: %v", tc.held, tc.required, err)
		}
		if !called {
			t.Fatalf("%s vs %s: next not called", tc.held, tc.required)
		}
	}
}

func TestRequireRole_DeniesLowerRole(t *testing.T) {
	e := echo.New()
	stub := &stubSessionService{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(PrincipalKey, &domain.Principal{Username: "u", Role: domain.RoleBackoffice})

	handler := RequireRole(stub, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_DeniesAbsentPrincipal(t *testing.T) {
	e := echo.New()
	stub := &stubSessionService{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(stub, domain.RoleRegular)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// No cookie at all is still a 403-shaped denial, never a 401.
	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
