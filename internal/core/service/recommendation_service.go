package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

const (
	defaultRecommendationLimit = 5
	defaultLocateTimeout       = 5 * time.Second
)

// RecommendationConfig tunes the fetcher.
type RecommendationConfig struct {
	Limit         int
	LocateTimeout time.Duration
}

// RecommendationFetcher loads the nearby and personalised lists
// independently; a failure on one side never blocks the other.
type RecommendationFetcher struct {
	api      ports.RecommendationAPI
	locator  ports.Locator
	identity Identity
	cfg      RecommendationConfig
	log      zerolog.Logger
}

// NewRecommendationFetcher returns a RecommendationService implementation.
// A nil locator means location is never available.
func NewRecommendationFetcher(api ports.RecommendationAPI, locator ports.Locator, identity Identity, cfg RecommendationConfig, log zerolog.Logger) *RecommendationFetcher {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRecommendationLimit
	}
	if cfg.LocateTimeout <= 0 {
		cfg.LocateTimeout = defaultLocateTimeout
	}
	return &RecommendationFetcher{
		api:      api,
		locator:  locator,
		identity: identity,
		cfg:      cfg,
		log:      log.With().Str("component", "recommendations").Logger(),
	}
}

// Fetch waits for both halves. It fails only when both fail; otherwise the
// failed half is empty and its error recorded on the result.
func (f *RecommendationFetcher) Fetch(ctx context.Context) (*ports.Recommendations, error) {
	cred, ok := f.identity.Credential()
	if !ok {
		return nil, domain.NewError(domain.ErrUnauthorized, "Please sign in to see recommendations.", nil)
	}

	out := &ports.Recommendations{
		Nearby:       []domain.Recommendation{},
		Personalised: []domain.Recommendation{},
	}
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		list, err := f.api.Personalised(ctx, cred.Token)
		if err != nil {
			out.PersonalisedErr = err
			f.log.Warn().Err(err).Msg("personalised recommendations unavailable")
			return
		}
		out.Personalised = domain.Truncate(list, f.cfg.Limit)
	}()

	go func() {
		defer wg.Done()
		at, err := f.locate(ctx)
		if err != nil {
			out.NearbyErr = err
			f.log.Debug().Err(err).Msg("no location, skipping nearby recommendations")
			return
		}
		out.Location = &at
		list, err := f.api.Nearby(ctx, cred.Token, at)
		if err != nil {
			out.NearbyErr = err
			f.log.Warn().Err(err).Msg("nearby recommendations unavailable")
			return
		}
		out.Nearby = domain.Truncate(list, f.cfg.Limit)
	}()

	wg.Wait()

	if out.PersonalisedErr != nil && out.NearbyErr != nil {
		return nil, fmt.Errorf("fetch recommendations: %w", errors.Join(out.PersonalisedErr, out.NearbyErr))
	}
	return out, nil
}

// locate bounds the locator wait; slow or denied lookups degrade to no location.
func (f *RecommendationFetcher) locate(ctx context.Context) (domain.Coordinates, error) {
	if f.locator == nil {
		return domain.Coordinates{}, domain.NewError(domain.ErrLocationUnavailable, "", nil)
	}
	lctx, cancel := context.WithTimeout(ctx, f.cfg.LocateTimeout)
	defer cancel()

	type result struct {
		at  domain.Coordinates
		err error
	}
	ch := make(chan result, 1)
	go func() {
		at, err := f.locator.Locate(lctx)
		ch <- result{at, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return domain.Coordinates{}, domain.NewError(domain.ErrLocationUnavailable, "", r.err)
		}
		if !r.at.Valid() {
			return domain.Coordinates{}, domain.NewError(domain.ErrLocationUnavailable, "", nil)
		}
		return r.at, nil
	case <-lctx.Done():
		return domain.Coordinates{}, domain.NewError(domain.ErrLocationUnavailable, "", lctx.Err())
	}
}
