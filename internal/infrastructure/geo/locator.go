// Package geo provides location sources for nearby recommendations.
package geo

import (
	"context"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

// StaticLocator always reports a configured point. A zero StaticLocator has
// no position.
type StaticLocator struct {
	at  domain.Coordinates
	set bool
}

// NewStaticLocator returns a locator for lat/lng. Either being nil yields a
// locator that never has a position.
func NewStaticLocator(lat, lng *float64) *StaticLocator {
	if lat == nil || lng == nil {
		return &StaticLocator{}
	}
	return &StaticLocator{at: domain.Coordinates{Lat: *lat, Lng: *lng}, set: true}
}

func (l *StaticLocator) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if !l.set || !l.at.Valid() {
		return domain.Coordinates{}, domain.NewError(domain.ErrLocationUnavailable, "", nil)
	}
	return l.at, nil
}

type hintKey struct{}

// WithHint attaches client-supplied coordinates to ctx.
func WithHint(ctx context.Context, at domain.Coordinates) context.Context {
	return context.WithValue(ctx, hintKey{}, at)
}

// HintLocator prefers coordinates attached with WithHint and falls back to
// the wrapped locator.
type HintLocator struct {
	Fallback ports.Locator
}

func (l HintLocator) Locate(ctx context.Context) (domain.Coordinates, error) {
	if at, ok := ctx.Value(hintKey{}).(domain.Coordinates); ok && at.Valid() {
		return at, nil
	}
	if l.Fallback == nil {
		return domain.Coordinates{}, domain.NewError(domain.ErrLocationUnavailable, "", nil)
	}
	return l.Fallback.Locate(ctx)
}
