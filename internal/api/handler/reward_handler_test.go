package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

type stubRewardService struct {
	points   int
	redeemed []string
}

func (s *stubRewardService) Balance(ctx context.Context) (*domain.PointsBalance, error) {
	return &domain.PointsBalance{Username: "alice", TotalPoints: s.points}, nil
}

func (s *stubRewardService) Catalog(ctx context.Context) ([]domain.Reward, error) {
	return []domain.Reward{{ID: "1", Name: "Free drink", PointsRequired: 50, Active: true}}, nil
}

func (s *stubRewardService) Redeem(ctx context.Context, rewardID string) (*domain.Redemption, error) {
	if s.points < 50 {
		return nil, domain.NewError(domain.ErrInsufficientPoints, "", nil)
	}
	s.redeemed = append(s.redeemed, rewardID)
	s.points -= 50
	return &domain.Redemption{RewardID: rewardID, PointsUsed: 50, PointsLeft: s.points}, nil
}

func TestRewardHandler_Redeem(t *testing.T) {
	e := echo.New()
	stub := &stubRewardService{points: 60}
	handler := NewRewardHandler(stub)

	rec := httptest.NewRecorder()
	if err := handler.Redeem(withID(e.NewContext(httptest.NewRequest(http.MethodPost, "/rewards/1/redeem", nil), rec), "1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(stub.redeemed) != 1 {
		t.Fatalf("expected one redemption with 200, got %d and %v", rec.Code, stub.redeemed)
	}

	err := handler.Redeem(withID(e.NewContext(httptest.NewRequest(http.MethodPost, "/rewards/1/redeem", nil), httptest.NewRecorder()), "1"))
	if !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestRewardHandler_BalanceAndCatalog(t *testing.T) {
	e := echo.New()
	handler := NewRewardHandler(&stubRewardService{points: 120})

	rec := httptest.NewRecorder()
	if err := handler.Balance(e.NewContext(httptest.NewRequest(http.MethodGet, "/rewards/me", nil), rec)); err != nil {
		t.Fatalf("balance: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if err := handler.Catalog(e.NewContext(httptest.NewRequest(http.MethodGet, "/rewards/catalog", nil), rec)); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
