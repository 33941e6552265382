package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/api/metrics"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/geo"
)

type RecommendationHandler struct {
	recommendations ports.RecommendationService
}

func NewRecommendationHandler(recommendations ports.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

type recommendationsResponse struct {
	Nearby       []domain.Recommendation `json:"nearby"`
	Personalised []domain.Recommendation `json:"personalised"`
	Location     *domain.Coordinates     `json:"location,omitempty"`
	Errors       map[string]string       `json:"errors,omitempty"`
}

// Fetch returns the nearby and personalised lists. Either list may be empty
// with its failure reported under errors.
//
// @Summary      Home recommendations
// @Tags         recommendations
// @Produce      json
// @Param        lat  query     number  false  "Latitude"
// @Param        lng  query     number  false  "Longitude"
// @Success      200  {object}  recommendationsResponse
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /recommendations [get]
func (h *RecommendationHandler) Fetch(c echo.Context) error {
	ctx := c.Request().Context()

	at, hinted, err := coordinates(c)
	if err != nil {
		return err
	}
	if hinted {
		ctx = geo.WithHint(ctx, at)
	}

	recs, err := h.recommendations.Fetch(ctx)
	if err != nil {
		metrics.RecommendationFetchesTotal.WithLabelValues("failed").Inc()
		return err
	}

	resp := recommendationsResponse{
		Nearby:       recs.Nearby,
		Personalised: recs.Personalised,
		Location:     recs.Location,
	}
	result := "full"
	if recs.NearbyErr != nil || recs.PersonalisedErr != nil {
		result = "partial"
		resp.Errors = make(map[string]string, 2)
		if recs.NearbyErr != nil {
			resp.Errors["nearby"] = domain.UserMessage(recs.NearbyErr)
		}
		if recs.PersonalisedErr != nil {
			resp.Errors["personalised"] = domain.UserMessage(recs.PersonalisedErr)
		}
	}
	metrics.RecommendationFetchesTotal.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, resp)
}

// coordinates reads the optional lat/lng pair. Both or neither must be given.
func coordinates(c echo.Context) (domain.Coordinates, bool, error) {
	rawLat, rawLng := c.QueryParam("lat"), c.QueryParam("lng")
	if rawLat == "" && rawLng == "" {
		return domain.Coordinates{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lng, lngErr := strconv.ParseFloat(rawLng, 64)
	at := domain.Coordinates{Lat: lat, Lng: lng}
	if latErr != nil || lngErr != nil || !at.Valid() {
		return domain.Coordinates{}, false, domain.ValidationError("lat and lng must be valid coordinates")
	}
	return at, true, nil
}
