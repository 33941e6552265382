package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"locked", domain.NewError(domain.ErrLockedOut, "Try again in 29 minutes.", nil), http.StatusLocked, "Try again in 29 minutes."},
		{"credentials", domain.NewError(domain.ErrInvalidCredentials, "", nil), http.StatusUnauthorized, "The username or password is incorrect. Please try again."},
		{"validation", domain.ValidationError("healthScore must be at least 1"), http.StatusUnprocessableEntity, "healthScore must be at least 1"},
		{"cooldown wrapped", fmt.Errorf("create review: %w", domain.NewError(domain.ErrReviewCooldownActive, "You must wait 7 days", nil)), http.StatusTooManyRequests, "You must wait 7 days"},
		{"forbidden", domain.NewError(domain.ErrForbidden, "Admin access required.", nil), http.StatusForbidden, "Admin access required."},
		{"points", domain.NewError(domain.ErrInsufficientPoints, "", nil), http.StatusConflict, "Not enough points to redeem this reward."},
		{"network", domain.NewError(domain.ErrNetwork, "", errors.New("dial tcp")), http.StatusBadGateway, "Unable to reach the server. Check your connection and try again."},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten, got %d %q", rec.Code, rec.Body.String())
	}
}
