package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// statusByReason maps classified errors to HTTP codes.
var statusByReason = []struct {
	reason error
	code   int
}{
	{domain.ErrLockedOut, http.StatusLocked},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrValidation, http.StatusUnprocessableEntity},
	{domain.ErrReviewCooldownActive, http.StatusTooManyRequests},
	{domain.ErrReviewDailyLimit, http.StatusTooManyRequests},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrInsufficientPoints, http.StatusConflict},
	{domain.ErrInvalidTransition, http.StatusConflict},
	{domain.ErrNotAuthor, http.StatusConflict},
	{domain.ErrOwnReview, http.StatusConflict},
	{domain.ErrLocationUnavailable, http.StatusServiceUnavailable},
	{domain.ErrInvalidServerResponse, http.StatusBadGateway},
	{domain.ErrNetwork, http.StatusBadGateway},
	{domain.ErrRequestFailed, http.StatusBadGateway},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps classified domain errors to HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range statusByReason {
		if errors.Is(err, m.reason) {
			if m.code == http.StatusBadGateway {
				log.Warn().
					Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Msg("backend request failed")
			}
			return m.code, domain.UserMessage(err)
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
