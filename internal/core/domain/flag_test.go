package domain

import (
	"errors"
	"testing"
	"time"
)

func TestFlagStatus_Transitions(t *testing.T) {
	if !FlagPending.CanTransitionTo(FlagResolved) || !FlagPending.CanTransitionTo(FlagDismissed) {
		t.Fatalf("pending flags must be resolvable")
	}
	if FlagResolved.CanTransitionTo(FlagDismissed) || FlagDismissed.CanTransitionTo(FlagPending) {
		t.Fatalf("terminal flags must not transition")
	}
	if !FlagResolved.Terminal() || FlagPending.Terminal() {
		t.Fatalf("unexpected terminal classification")
	}
}

func TestFlag_Resolve(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f := &Flag{ID: "f1", Status: FlagPending}

	if err := f.Resolve(ActionRemove, "spam", at); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.Status != FlagResolved || f.AdminNotes != "spam" || f.ReviewedAt == nil || !f.ReviewedAt.Equal(at) {
		t.Fatalf("unexpected flag after resolve: %+v", f)
	}
	if err := f.Resolve(ActionDismiss, "", at); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestParseResolveAction(t *testing.T) {
	if a, ok := ParseResolveAction(" remove "); !ok || a != ActionRemove || a.Outcome() != FlagResolved {
		t.Fatalf("unexpected parse of remove: %v %v", a, ok)
	}
	if a, ok := ParseResolveAction("DISMISS"); !ok || a.Outcome() != FlagDismissed {
		t.Fatalf("unexpected parse of dismiss: %v %v", a, ok)
	}
	if _, ok := ParseResolveAction("ESCALATE"); ok {
		t.Fatalf("expected unknown action to be rejected")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":      RoleAdmin,
		"admin":      RoleAdmin,
		"ROLE_ADMIN": RoleAdmin,
		"USER":       RoleUser,
		"":           RoleUser,
		"owner":      RoleUser,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestError_IsAndMessage(t *testing.T) {
	err := NewError(ErrReviewCooldownActive, "You must wait 7 days", nil)
	wrapped := errors.Join(errors.New("create review"), err)

	if !errors.Is(wrapped, ErrReviewCooldownActive) {
		t.Fatalf("expected cooldown classification")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("cooldown must be distinguishable from validation")
	}
	if got := UserMessage(wrapped); got != "You must wait 7 days" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := UserMessage(NewError(ErrLockedOut, "", nil)); got == "" {
		t.Fatalf("expected default message for lockout")
	}
}
