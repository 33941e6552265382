package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

type stubReviewService struct {
	snap      *ports.EntityReviews
	createErr error
	deletes   int
	flagged   string
	created   domain.ReviewInput
}

func (s *stubReviewService) Load(ctx context.Context, entityID string) (*ports.EntityReviews, error) {
	return s.snap, nil
}

func (s *stubReviewService) MyReview(ctx context.Context, entityID string) (*domain.Review, error) {
	return nil, nil
}

func (s *stubReviewService) Create(ctx context.Context, entityID string, in domain.ReviewInput) (*ports.EntityReviews, error) {
	s.created = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.snap, nil
}

func (s *stubReviewService) Update(ctx context.Context, entityID, reviewID string, in domain.ReviewInput) (*ports.EntityReviews, error) {
	return s.snap, nil
}

func (s *stubReviewService) Delete(ctx context.Context, entityID, reviewID string) (*ports.EntityReviews, error) {
	s.deletes++
	return s.snap, nil
}

func (s *stubReviewService) Flag(ctx context.Context, entityID, reviewID, reason string) (*domain.Flag, error) {
	s.flagged = reason
	return &domain.Flag{ID: "f1", ReviewID: reviewID, Reason: reason, Status: domain.FlagPending}, nil
}

func reviewContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, id, reviewID string) echo.Context {
	c := e.NewContext(req, rec)
	if reviewID == "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c
	}
	c.SetParamNames("id", "reviewId")
	c.SetParamValues(id, reviewID)
	return c
}

func TestReviewHandler_Delete_RequiresConfirm(t *testing.T) {
	e := echo.New()
	stub := &stubReviewService{snap: &ports.EntityReviews{EntityID: "e1"}}
	handler := NewReviewHandler(stub)

	c := reviewContext(e, httptest.NewRequest(http.MethodDelete, "/eateries/e1/reviews/r1", nil), httptest.NewRecorder(), "e1", "r1")

	var he *echo.HTTPError
	if err := handler.Delete(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if stub.deletes != 0 {
		t.Fatalf("delete must not reach the service without confirmation")
	}

	rec := httptest.NewRecorder()
	c = reviewContext(e, httptest.NewRequest(http.MethodDelete, "/eateries/e1/reviews/r1?confirm=true", nil), rec, "e1", "r1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.deletes != 1 || rec.Code != http.StatusOK {
		t.Fatalf("expected one delete and 200, got %d and %d", stub.deletes, rec.Code)
	}
}

func TestReviewHandler_Create(t *testing.T) {
	e := echo.New()
	stub := &stubReviewService{snap: &ports.EntityReviews{
		EntityID: "e1",
		Reviews:  []domain.Review{{ID: "r1", HealthScore: 4, HygieneScore: 5, TextFeedback: "good"}},
		Summary:  domain.RatingSummary{AverageHealthScore: 4, AverageHygieneScore: 5, TotalReviews: 1},
	}}
	handler := NewReviewHandler(stub)

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/eateries/e1/reviews", `{"healthScore":4,"hygieneScore":5,"textFeedback":"good"}`)
	if err := handler.Create(reviewContext(e, req, rec, "e1", "")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.created.HealthScore != 4 || stub.created.TextFeedback != "good" {
		t.Fatalf("unexpected input forwarded: %+v", stub.created)
	}

	var resp ports.EntityReviews
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Reviews) != 1 || resp.Summary.TotalReviews != 1 {
		t.Fatalf("unexpected snapshot: %+v", resp)
	}
}

func TestReviewHandler_Create_Cooldown(t *testing.T) {
	e := echo.New()
	stub := &stubReviewService{createErr: domain.NewError(domain.ErrReviewCooldownActive, "You must wait 7 days", nil)}
	handler := NewReviewHandler(stub)

	req := jsonRequest(http.MethodPost, "/eateries/e1/reviews", `{"healthScore":4,"hygieneScore":5,"textFeedback":"again"}`)
	err := handler.Create(reviewContext(e, req, httptest.NewRecorder(), "e1", ""))
	if !errors.Is(err, domain.ErrReviewCooldownActive) {
		t.Fatalf("expected cooldown error, got %v", err)
	}
}

func TestReviewHandler_Flag_RequiresReason(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubReviewService{}
	handler := NewReviewHandler(stub)

	req := jsonRequest(http.MethodPost, "/eateries/e1/reviews/r1/flag", `{"reason":""}`)
	err := handler.Flag(reviewContext(e, req, httptest.NewRecorder(), "e1", "r1"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if stub.flagged != "" {
		t.Fatalf("service must not be called")
	}

	rec := httptest.NewRecorder()
	req = jsonRequest(http.MethodPost, "/eateries/e1/reviews/r1/flag", `{"reason":"spam"}`)
	if err := handler.Flag(reviewContext(e, req, rec, "e1", "r1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.flagged != "spam" || rec.Code != http.StatusCreated {
		t.Fatalf("expected flag forwarded with 201, got %q and %d", stub.flagged, rec.Code)
	}
}

func TestReviewHandler_Mine_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewReviewHandler(&stubReviewService{})

	err := handler.Mine(reviewContext(e, httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder(), "e1", ""))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewHandler_Stars(t *testing.T) {
	e := echo.New()
	stub := &stubReviewService{snap: &ports.EntityReviews{
		EntityID: "e1",
		Summary:  domain.RatingSummary{AverageHealthScore: 3.5, AverageHygieneScore: 4.8, TotalReviews: 4},
	}}
	handler := NewReviewHandler(stub)

	rec := httptest.NewRecorder()
	if err := handler.Stars(reviewContext(e, httptest.NewRequest(http.MethodGet, "/eateries/e1/stars", nil), rec, "e1", "")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp starsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := []domain.Star{domain.StarFull, domain.StarFull, domain.StarFull, domain.StarHalf, domain.StarEmpty}
	for i, s := range want {
		if resp.Health.Stars[i] != s {
			t.Fatalf("health slot %d: expected %s, got %s", i, s, resp.Health.Stars[i])
		}
	}
	if full, _, _ := domain.CountStars(resp.Hygiene.Stars); full != 5 {
		t.Fatalf("expected 5 full hygiene stars, got %d", full)
	}
	if resp.TotalReviews != 4 {
		t.Fatalf("expected 4 reviews, got %d", resp.TotalReviews)
	}
}

func TestReviewHandler_Stars_BadSlots(t *testing.T) {
	e := echo.New()
	handler := NewReviewHandler(&stubReviewService{})

	err := handler.Stars(reviewContext(e, httptest.NewRequest(http.MethodGet, "/eateries/e1/stars?slots=many", nil), httptest.NewRecorder(), "e1", ""))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
