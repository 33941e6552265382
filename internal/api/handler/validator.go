package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/pkg/validation"
)

// echoValidator lets Echo call c.Validate(req) with the shared field messages.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() echo.Validator {
	return echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (echoValidator) Validate(i any) error {
	if msgs := validation.Check(i); len(msgs) > 0 {
		return domain.ValidationError(msgs...)
	}
	return nil
}

// bind decodes the request body into req and validates it when a validator
// is installed.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
