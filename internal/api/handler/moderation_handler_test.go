package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

type stubModerationService struct {
	calls      []string
	lastStatus domain.FlagStatus
	lastAction domain.ResolveAction
	resolveErr error
}

func (s *stubModerationService) Dashboard(ctx context.Context, status domain.FlagStatus) (*ports.Dashboard, error) {
	s.calls = append(s.calls, "dashboard")
	s.lastStatus = status
	return &ports.Dashboard{Metrics: &domain.DashboardMetrics{PendingFlags: 2}}, nil
}

func (s *stubModerationService) ListFlags(ctx context.Context, status domain.FlagStatus) ([]domain.Flag, error) {
	s.calls = append(s.calls, "list")
	s.lastStatus = status
	return []domain.Flag{{ID: "f1", Status: status}}, nil
}

func (s *stubModerationService) FlagsByReason(ctx context.Context, reason string, status domain.FlagStatus) ([]domain.Flag, error) {
	s.calls = append(s.calls, "by-reason:"+reason)
	s.lastStatus = status
	return []domain.Flag{}, nil
}

func (s *stubModerationService) ResolveFlag(ctx context.Context, flagID string, action domain.ResolveAction, notes string) (*domain.Flag, error) {
	s.calls = append(s.calls, "resolve")
	s.lastAction = action
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return &domain.Flag{ID: flagID, Status: action.Outcome(), AdminNotes: notes}, nil
}

func (s *stubModerationService) HideReview(ctx context.Context, reviewID, reason string) error {
	s.calls = append(s.calls, "hide")
	return nil
}

func (s *stubModerationService) DeleteReview(ctx context.Context, reviewID, reason string) error {
	s.calls = append(s.calls, "delete")
	return nil
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestModerationHandler_Flags_ByReason(t *testing.T) {
	e := echo.New()
	stub := &stubModerationService{}
	handler := NewModerationHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/flags?reason=spam&status=resolved", nil), rec)
	if err := handler.Flags(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "by-reason:spam" {
		t.Fatalf("unexpected calls: %v", stub.calls)
	}
	if stub.lastStatus != domain.FlagResolved {
		t.Fatalf("expected RESOLVED, got %s", stub.lastStatus)
	}
	if rec.Body.String() != "[]\n" {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestModerationHandler_Flags_DefaultsToPending(t *testing.T) {
	e := echo.New()
	stub := &stubModerationService{}
	handler := NewModerationHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/flags", nil), httptest.NewRecorder())
	if err := handler.Flags(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.calls[0] != "list" || stub.lastStatus != domain.FlagPending {
		t.Fatalf("expected pending list, got %v %s", stub.calls, stub.lastStatus)
	}
}

func TestModerationHandler_Resolve(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubModerationService{}
	handler := NewModerationHandler(stub)

	err := handler.Resolve(withID(e.NewContext(jsonRequest(http.MethodPut, "/admin/flags/f1/resolve", `{"action":"ESCALATE"}`), httptest.NewRecorder()), "f1"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("service must not be called for an unknown action")
	}

	rec := httptest.NewRecorder()
	if err := handler.Resolve(withID(e.NewContext(jsonRequest(http.MethodPut, "/admin/flags/f1/resolve", `{"action":"remove","notes":"abusive"}`), rec), "f1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastAction != domain.ActionRemove || rec.Code != http.StatusOK {
		t.Fatalf("expected REMOVE with 200, got %s and %d", stub.lastAction, rec.Code)
	}
}

func TestModerationHandler_Resolve_Terminal(t *testing.T) {
	e := echo.New()
	stub := &stubModerationService{resolveErr: domain.NewError(domain.ErrInvalidTransition, "", nil)}
	handler := NewModerationHandler(stub)

	err := handler.Resolve(withID(e.NewContext(jsonRequest(http.MethodPut, "/", `{"action":"DISMISS"}`), httptest.NewRecorder()), "f1"))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestModerationHandler_Delete_RequiresConfirm(t *testing.T) {
	e := echo.New()
	stub := &stubModerationService{}
	handler := NewModerationHandler(stub)

	var he *echo.HTTPError
	err := handler.Delete(withID(e.NewContext(httptest.NewRequest(http.MethodDelete, "/admin/reviews/r1?reason=spam", nil), httptest.NewRecorder()), "r1"))
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	rec := httptest.NewRecorder()
	if err := handler.Delete(withID(e.NewContext(httptest.NewRequest(http.MethodDelete, "/admin/reviews/r1?reason=spam&confirm=true", nil), rec), "r1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "delete" {
		t.Fatalf("unexpected calls: %v", stub.calls)
	}
}
