package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/api/metrics"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	HealthScore  int      `json:"healthScore"`
	HygieneScore int      `json:"hygieneScore"`
	TextFeedback string   `json:"textFeedback"`
	Photos       []string `json:"photos,omitempty"`
}

func (r reviewRequest) input() domain.ReviewInput {
	return domain.ReviewInput{
		HealthScore:  r.HealthScore,
		HygieneScore: r.HygieneScore,
		TextFeedback: r.TextFeedback,
		Photos:       r.Photos,
	}
}

type flagRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ratingStars struct {
	Average float64       `json:"average"`
	Stars   []domain.Star `json:"stars"`
}

type starsResponse struct {
	EntityID     string      `json:"entityId"`
	TotalReviews int         `json:"totalReviews"`
	Health       ratingStars `json:"health"`
	Hygiene      ratingStars `json:"hygiene"`
}

// List returns the eatery's reviews with their rating summary.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Eatery ID"
// @Success      200  {object}  ports.EntityReviews
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /eateries/{id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	snap, err := h.reviews.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Mine returns the signed-in user's review of the eatery.
//
// @Summary      My review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Eatery ID"
// @Success      200  {object}  domain.Review
// @Failure      404  {object}  map[string]string
// @Router       /eateries/{id}/reviews/mine [get]
func (h *ReviewHandler) Mine(c echo.Context) error {
	review, err := h.reviews.MyReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if review == nil {
		return domain.NewError(domain.ErrNotFound, "No review found.", nil)
	}
	return c.JSON(http.StatusOK, review)
}

// Create submits a review and returns the refreshed list and summary.
//
// @Summary      Create review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Eatery ID"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  ports.EntityReviews
// @Failure      422   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /eateries/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	snap, err := h.reviews.Create(c.Request().Context(), c.Param("id"), req.input())
	metrics.ReviewMutationsTotal.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, snap)
}

// Update edits the caller's own review.
//
// @Summary      Update review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id        path      string         true  "Eatery ID"
// @Param        reviewId  path      string         true  "Review ID"
// @Param        body      body      reviewRequest  true  "Review"
// @Success      200       {object}  ports.EntityReviews
// @Failure      409       {object}  map[string]string
// @Failure      422       {object}  map[string]string
// @Router       /eateries/{id}/reviews/{reviewId} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	snap, err := h.reviews.Update(c.Request().Context(), c.Param("id"), c.Param("reviewId"), req.input())
	metrics.ReviewMutationsTotal.WithLabelValues("update", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Delete removes the caller's own review. The caller must pass confirm=true.
//
// @Summary      Delete review
// @Tags         reviews
// @Produce      json
// @Param        id        path      string  true  "Eatery ID"
// @Param        reviewId  path      string  true  "Review ID"
// @Param        confirm   query     bool    true  "Must be true"
// @Success      200       {object}  ports.EntityReviews
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /eateries/{id}/reviews/{reviewId} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := requireConfirm(c); err != nil {
		return err
	}

	snap, err := h.reviews.Delete(c.Request().Context(), c.Param("id"), c.Param("reviewId"))
	metrics.ReviewMutationsTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Flag reports another user's review.
//
// @Summary      Flag review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id        path      string       true  "Eatery ID"
// @Param        reviewId  path      string       true  "Review ID"
// @Param        body      body      flagRequest  true  "Reason"
// @Success      201       {object}  domain.Flag
// @Failure      409       {object}  map[string]string
// @Router       /eateries/{id}/reviews/{reviewId}/flag [post]
func (h *ReviewHandler) Flag(c echo.Context) error {
	var req flagRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	flag, err := h.reviews.Flag(c.Request().Context(), c.Param("id"), c.Param("reviewId"), req.Reason)
	metrics.ReviewMutationsTotal.WithLabelValues("flag", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, flag)
}

// Stars renders the eatery's averages as display slots.
//
// @Summary      Star rating
// @Tags         reviews
// @Produce      json
// @Param        id     path      string  true   "Eatery ID"
// @Param        slots  query     int     false  "Slot count (default 5)"
// @Success      200    {object}  starsResponse
// @Router       /eateries/{id}/stars [get]
func (h *ReviewHandler) Stars(c echo.Context) error {
	slots := domain.DefaultStarSlots
	if raw := c.QueryParam("slots"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ValidationError("slots must be a number")
		}
		slots = n
	}

	snap, err := h.reviews.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	sum := snap.Summary
	return c.JSON(http.StatusOK, starsResponse{
		EntityID:     snap.EntityID,
		TotalReviews: sum.TotalReviews,
		Health:       ratingStars{Average: sum.AverageHealthScore, Stars: domain.StarsFor(sum.AverageHealthScore, slots)},
		Hygiene:      ratingStars{Average: sum.AverageHygieneScore, Stars: domain.StarsFor(sum.AverageHygieneScore, slots)},
	})
}

func requireConfirm(c echo.Context) error {
	if ok, _ := strconv.ParseBool(c.QueryParam("confirm")); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "deletion must be confirmed with confirm=true")
	}
	return nil
}
