package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// Identity is the part of the session the middleware needs.
type Identity interface {
	Credential() (domain.Credential, bool)
}

// RequireSession rejects requests when nobody is signed in and injects the
// session's username and role into the context.
func RequireSession(id Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cred, ok := id.Credential()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "please sign in to continue")
			}

			c.Set("username", cred.Username)
			c.Set("role", string(cred.Role))

			return next(c)
		}
	}
}
