package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

type stubIdentity struct {
	cred *domain.Credential
}

func (s stubIdentity) Credential() (domain.Credential, bool) {
	if s.cred == nil {
		return domain.Credential{}, false
	}
	return *s.cred, true
}

func TestRequireSession_SignedIn(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	called := false
	mw := RequireSession(stubIdentity{cred: &domain.Credential{Token: "t", Username: "alice", Role: domain.RoleAdmin}})
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("username") != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get("role") != "ADMIN" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireSession_SignedOut(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireSession(stubIdentity{})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
