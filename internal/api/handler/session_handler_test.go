package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apdc/auth-api/internal/api/middleware"
	"github.com/apdc/auth-api/internal/core/domain"
)

func TestSessionHandler_Me(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	now := time.Now().UTC().Truncate(time.Second)
	c.Set(middleware.PrincipalKey, &domain.Principal{
		Username:  "alice",
		Role:      domain.RoleBackoffice,
		Email:     "alice@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})

	if err := NewSessionHandler().Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "Backoffice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSessionHandler_Now(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/time", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, &domain.Principal{Username: "admin", Role: domain.RoleAdmin})

	before := time.Now().Unix()
	if err := NewSessionHandler().Now(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	after := time.Now().Unix()

	var resp timeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Unix < before || resp.Unix > after {
		t.Fatalf("reported time %d outside [%d, %d]", resp.Unix, before, after)
	}
	if _, err := time.Parse(time.RFC3339, resp.Time); err != nil {
		t.Fatalf("time not RFC3339: %v", err)
	}
}

func TestSessionHandler_MissingPrincipalIsForbidden(t *testing.T) {
	e := echo.New()
	h := NewSessionHandler()

	for name, fn := range map[string]echo.HandlerFunc{"me": h.Me, "time": h.Now} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := fn(c); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", name, err)
		}
	}
}
