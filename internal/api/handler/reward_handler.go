package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/api/metrics"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

type RewardHandler struct {
	rewards ports.RewardService
}

func NewRewardHandler(rewards ports.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// Balance returns the points account.
//
// @Summary      Points balance
// @Tags         rewards
// @Produce      json
// @Success      200  {object}  domain.PointsBalance
// @Failure      401  {object}  map[string]string
// @Router       /rewards/me [get]
func (h *RewardHandler) Balance(c echo.Context) error {
	balance, err := h.rewards.Balance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balance)
}

// Catalog lists the rewards on offer.
//
// @Summary      Reward catalog
// @Tags         rewards
// @Produce      json
// @Success      200  {array}   domain.Reward
// @Failure      401  {object}  map[string]string
// @Router       /rewards/catalog [get]
func (h *RewardHandler) Catalog(c echo.Context) error {
	rewards, err := h.rewards.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rewards)
}

// Redeem exchanges points for a reward.
//
// @Summary      Redeem reward
// @Tags         rewards
// @Produce      json
// @Param        id   path      string  true  "Reward ID"
// @Success      200  {object}  domain.Redemption
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /rewards/{id}/redeem [post]
func (h *RewardHandler) Redeem(c echo.Context) error {
	redemption, err := h.rewards.Redeem(c.Request().Context(), c.Param("id"))
	metrics.RedemptionsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, redemption)
}
