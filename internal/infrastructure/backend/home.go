package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// Personalised returns recommendations ranked for the signed-in user.
func (c *Client) Personalised(ctx context.Context, token string) ([]domain.Recommendation, error) {
	return c.recommendations(ctx, call{op: "personalised", method: http.MethodGet, path: "/home/recommendations", token: token})
}

// Nearby returns recommendations ranked by distance from at.
func (c *Client) Nearby(ctx context.Context, token string, at domain.Coordinates) ([]domain.Recommendation, error) {
	q := url.Values{"lat": {formatCoord(at.Lat)}, "lng": {formatCoord(at.Lng)}}
	return c.recommendations(ctx, call{op: "nearby", method: http.MethodGet, path: "/home/recommendations", query: q, token: token})
}

func (c *Client) recommendations(ctx context.Context, cl call) ([]domain.Recommendation, error) {
	var wires []recommendationWire
	if err := c.do(ctx, cl, &wires); err != nil {
		return nil, err
	}
	out := make([]domain.Recommendation, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.domain())
	}
	return out, nil
}

func (c *Client) Points(ctx context.Context, token string) (*domain.PointsBalance, error) {
	var w pointsWire
	if err := c.do(ctx, call{op: "points", method: http.MethodGet, path: "/rewards/me", token: token}, &w); err != nil {
		return nil, err
	}
	return w.domain(), nil
}

func (c *Client) Catalog(ctx context.Context, token string) ([]domain.Reward, error) {
	var wires []rewardWire
	if err := c.do(ctx, call{op: "catalog", method: http.MethodGet, path: "/rewards/catalog", token: token}, &wires); err != nil {
		return nil, err
	}
	out := make([]domain.Reward, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.domain())
	}
	return out, nil
}

func (c *Client) Redeem(ctx context.Context, token, rewardID string) (*domain.Redemption, error) {
	var w redemptionWire
	err := c.do(ctx, call{
		op:     "redeem",
		method: http.MethodPost,
		path:   "/rewards/me/redeem-reward/" + idPath(rewardID),
		token:  token,
	}, &w)
	if err != nil {
		return nil, err
	}
	return w.domain(rewardID), nil
}
