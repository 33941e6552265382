package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

func TestStaticLocator(t *testing.T) {
	lat, lng := 1.3521, 103.8198
	at, err := NewStaticLocator(&lat, &lng).Locate(context.Background())
	if err != nil || at.Lat != lat || at.Lng != lng {
		t.Fatalf("unexpected position: %+v %v", at, err)
	}

	if _, err := NewStaticLocator(nil, &lng).Locate(context.Background()); !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}

	bad := 123.0
	if _, err := NewStaticLocator(&bad, &lng).Locate(context.Background()); !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Fatalf("expected out-of-range latitude rejected, got %v", err)
	}
}

func TestHintLocator(t *testing.T) {
	lat, lng := 1.0, 2.0
	l := HintLocator{Fallback: NewStaticLocator(&lat, &lng)}

	ctx := WithHint(context.Background(), domain.Coordinates{Lat: 3, Lng: 4})
	at, err := l.Locate(ctx)
	if err != nil || at.Lat != 3 || at.Lng != 4 {
		t.Fatalf("expected hint, got %+v %v", at, err)
	}

	at, err = l.Locate(context.Background())
	if err != nil || at.Lat != 1 {
		t.Fatalf("expected fallback, got %+v %v", at, err)
	}

	if _, err := (HintLocator{}).Locate(context.Background()); !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}
