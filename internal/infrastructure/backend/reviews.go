package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

func reviewsPath(entityID string) string {
	return "/api/eateries/" + idPath(entityID) + "/reviews"
}

// decodeReviewList accepts a JSON array or the {"message": ...} object the API
// returns for an empty list.
func decodeReviewList(op string, raw json.RawMessage, entityID string) ([]domain.Review, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, domain.NewError(domain.ErrInvalidServerResponse, "", fmt.Errorf("%s: %w", op, err))
		}
		return []domain.Review{}, nil
	}
	var wires []reviewWire
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, domain.NewError(domain.ErrInvalidServerResponse, "", fmt.Errorf("%s: %w", op, err))
	}
	out := make([]domain.Review, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.domain(entityID))
	}
	return out, nil
}

func (c *Client) ListReviews(ctx context.Context, token, entityID string) ([]domain.Review, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{op: "list_reviews", method: http.MethodGet, path: reviewsPath(entityID), token: token}, &raw); err != nil {
		return nil, err
	}
	return decodeReviewList("list_reviews", raw, entityID)
}

func (c *Client) Ratings(ctx context.Context, token, entityID string) (domain.RatingSummary, error) {
	var w ratingsWire
	if err := c.do(ctx, call{op: "ratings", method: http.MethodGet, path: reviewsPath(entityID) + "/ratings", token: token}, &w); err != nil {
		return domain.RatingSummary{}, err
	}
	return w.domain(), nil
}

// MyReview returns nil, nil when the user has not reviewed the eatery.
func (c *Client) MyReview(ctx context.Context, token, entityID string) (*domain.Review, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{op: "my_review", method: http.MethodGet, path: reviewsPath(entityID) + "/my-review", token: token}, &raw); err != nil {
		return nil, err
	}
	var w reviewWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, domain.NewError(domain.ErrInvalidServerResponse, "", fmt.Errorf("my_review: %w", err))
	}
	if w.ID == "" {
		return nil, nil
	}
	r := w.domain(entityID)
	r.IsOwnReview = true
	return &r, nil
}

func (c *Client) CreateReview(ctx context.Context, token, entityID string, in domain.ReviewInput) (*domain.Review, error) {
	return c.writeReview(ctx, call{
		op:     "create_review",
		method: http.MethodPost,
		path:   reviewsPath(entityID),
		token:  token,
		body:   in,
	}, entityID)
}

func (c *Client) UpdateReview(ctx context.Context, token, entityID, reviewID string, in domain.ReviewInput) (*domain.Review, error) {
	return c.writeReview(ctx, call{
		op:     "update_review",
		method: http.MethodPut,
		path:   reviewsPath(entityID) + "/" + idPath(reviewID),
		token:  token,
		body:   in,
	}, entityID)
}

func (c *Client) writeReview(ctx context.Context, cl call, entityID string) (*domain.Review, error) {
	var env reviewEnvelope
	if err := c.do(ctx, cl, &env); err != nil {
		return nil, err
	}
	if env.Review == nil {
		return nil, domain.NewError(domain.ErrInvalidServerResponse, "", fmt.Errorf("%s: missing review", cl.op))
	}
	r := env.Review.domain(entityID)
	r.IsOwnReview = true
	return &r, nil
}

func (c *Client) DeleteReview(ctx context.Context, token, entityID, reviewID string) error {
	return c.do(ctx, call{
		op:     "delete_review",
		method: http.MethodDelete,
		path:   reviewsPath(entityID) + "/" + idPath(reviewID),
		token:  token,
	}, nil)
}

// FlagReview reports a review. The API answers with a message only, so the
// returned flag carries what the client knows.
func (c *Client) FlagReview(ctx context.Context, token, entityID, reviewID, reason string) (*domain.Flag, error) {
	var w flagWire
	err := c.do(ctx, call{
		op:     "flag_review",
		method: http.MethodPost,
		path:   reviewsPath(entityID) + "/" + idPath(reviewID) + "/flag",
		token:  token,
		body:   map[string]string{"reason": reason},
	}, &w)
	if err != nil {
		return nil, err
	}
	f := w.domain()
	if f.ReviewID == "" {
		f.ReviewID = reviewID
	}
	if f.Reason == "" {
		f.Reason = reason
	}
	return &f, nil
}
