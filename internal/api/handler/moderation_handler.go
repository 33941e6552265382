package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/api/metrics"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

type ModerationHandler struct {
	moderation ports.ModerationService
}

func NewModerationHandler(moderation ports.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

type resolveRequest struct {
	Action string `json:"action" validate:"required"`
	Notes  string `json:"notes"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Dashboard returns metrics, flags and the audit trail in one response.
//
// @Summary      Moderation dashboard
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Flag status (default PENDING)"
// @Success      200     {object}  ports.Dashboard
// @Failure      403     {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *ModerationHandler) Dashboard(c echo.Context) error {
	dash, err := h.moderation.Dashboard(c.Request().Context(), flagStatus(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

// Flags lists flags by status, optionally narrowed to one reason.
//
// @Summary      List flags
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Flag status (default PENDING)"
// @Param        reason  query     string  false  "Flag reason"
// @Success      200     {array}   domain.Flag
// @Failure      403     {object}  map[string]string
// @Router       /admin/flags [get]
func (h *ModerationHandler) Flags(c echo.Context) error {
	ctx := c.Request().Context()
	status := flagStatus(c)

	var (
		flags []domain.Flag
		err   error
	)
	if reason := strings.TrimSpace(c.QueryParam("reason")); reason != "" {
		flags, err = h.moderation.FlagsByReason(ctx, reason, status)
	} else {
		flags, err = h.moderation.ListFlags(ctx, status)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flags)
}

// Resolve applies REMOVE or DISMISS to a pending flag.
//
// @Summary      Resolve flag
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Flag ID"
// @Param        body  body      resolveRequest  true  "Decision"
// @Success      200   {object}  domain.Flag
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/flags/{id}/resolve [put]
func (h *ModerationHandler) Resolve(c echo.Context) error {
	var req resolveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	action, ok := domain.ParseResolveAction(req.Action)
	if !ok {
		return domain.ValidationError("action must be one of: REMOVE DISMISS")
	}

	flag, err := h.moderation.ResolveFlag(c.Request().Context(), c.Param("id"), action, req.Notes)
	metrics.ModerationActionsTotal.WithLabelValues(string(action), metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flag)
}

// Hide hides a review from public listings.
//
// @Summary      Hide review
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Review ID"
// @Param        body  body      reasonRequest  true  "Reason"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  map[string]string
// @Router       /admin/reviews/{id}/hide [put]
func (h *ModerationHandler) Hide(c echo.Context) error {
	var req reasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.moderation.HideReview(c.Request().Context(), c.Param("id"), req.Reason)
	metrics.ModerationActionsTotal.WithLabelValues("hide", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Review hidden."})
}

// Delete permanently removes a review. The caller must pass confirm=true.
//
// @Summary      Delete review
// @Tags         admin
// @Produce      json
// @Param        id       path      string  true  "Review ID"
// @Param        reason   query     string  true  "Reason"
// @Param        confirm  query     bool    true  "Must be true"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /admin/reviews/{id} [delete]
func (h *ModerationHandler) Delete(c echo.Context) error {
	if err := requireConfirm(c); err != nil {
		return err
	}

	err := h.moderation.DeleteReview(c.Request().Context(), c.Param("id"), c.QueryParam("reason"))
	metrics.ModerationActionsTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Review deleted."})
}

func flagStatus(c echo.Context) domain.FlagStatus {
	raw := strings.TrimSpace(c.QueryParam("status"))
	if raw == "" {
		return domain.FlagPending
	}
	return domain.ParseFlagStatus(raw)
}
