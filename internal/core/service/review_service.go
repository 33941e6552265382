package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
	"github.com/eggrusher04/HealthyAuraProject/internal/pkg/validation"
)

// Serializer runs work sharing a key one at a time, in submission order.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// ReviewLifecycle orchestrates the signed-in user's reviews. Every mutation is
// followed by a joint re-fetch of the review list and its rating summary, and
// the pair is published as one snapshot.
type ReviewLifecycle struct {
	api      ports.ReviewAPI
	identity Identity
	serial   Serializer
	log      zerolog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	snapshots map[string]*ports.EntityReviews
}

// NewReviewLifecycle returns a ReviewService implementation.
func NewReviewLifecycle(api ports.ReviewAPI, identity Identity, serial Serializer, log zerolog.Logger) *ReviewLifecycle {
	return &ReviewLifecycle{
		api:       api,
		identity:  identity,
		serial:    serial,
		log:       log.With().Str("component", "reviews").Logger(),
		now:       time.Now,
		snapshots: make(map[string]*ports.EntityReviews),
	}
}

// Load fetches the reviews and rating summary of an eatery together.
func (s *ReviewLifecycle) Load(ctx context.Context, entityID string) (*ports.EntityReviews, error) {
	if strings.TrimSpace(entityID) == "" {
		return nil, domain.ValidationError("eatery id is required")
	}
	cred, _ := s.identity.Credential()

	var snap *ports.EntityReviews
	err := s.serial.Do(ctx, entityID, func(ctx context.Context) error {
		var err error
		snap, err = s.refresh(ctx, cred, entityID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	return snap, nil
}

// Snapshot returns the last consistent list and summary for an eatery.
func (s *ReviewLifecycle) Snapshot(entityID string) (*ports.EntityReviews, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[entityID]
	return snap, ok
}

// MyReview returns the caller's review of an eatery, or nil when there is none.
func (s *ReviewLifecycle) MyReview(ctx context.Context, entityID string) (*domain.Review, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	r, err := s.api.MyReview(ctx, cred.Token, entityID)
	if err != nil {
		return nil, fmt.Errorf("my review: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	r.IsOwnReview = true
	return r, nil
}

// Create submits a new review. A cooldown rejection surfaces as
// ErrReviewCooldownActive.
func (s *ReviewLifecycle) Create(ctx context.Context, entityID string, in domain.ReviewInput) (*ports.EntityReviews, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := validateReview(entityID, in); err != nil {
		return nil, err
	}

	return s.mutate(ctx, cred, entityID, "create", func(ctx context.Context) error {
		_, err := s.api.CreateReview(ctx, cred.Token, entityID, normalizeInput(in))
		return err
	})
}

// Update edits the caller's own review.
func (s *ReviewLifecycle) Update(ctx context.Context, entityID, reviewID string, in domain.ReviewInput) (*ports.EntityReviews, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := validateReview(entityID, in); err != nil {
		return nil, err
	}

	return s.mutate(ctx, cred, entityID, "update", func(ctx context.Context) error {
		if _, err := s.authored(ctx, cred, entityID, reviewID); err != nil {
			return err
		}
		_, err := s.api.UpdateReview(ctx, cred.Token, entityID, reviewID, normalizeInput(in))
		return err
	})
}

// Delete removes the caller's own review. Confirmation is the caller's job.
func (s *ReviewLifecycle) Delete(ctx context.Context, entityID, reviewID string) (*ports.EntityReviews, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, cred, entityID, "delete", func(ctx context.Context) error {
		if _, err := s.authored(ctx, cred, entityID, reviewID); err != nil {
			return err
		}
		return s.api.DeleteReview(ctx, cred.Token, entityID, reviewID)
	})
}

// Flag reports someone else's review. The flag starts PENDING.
func (s *ReviewLifecycle) Flag(ctx context.Context, entityID, reviewID, reason string) (*domain.Flag, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ValidationError("reason is required")
	}

	var flag *domain.Flag
	err = s.serial.Do(ctx, entityID, func(ctx context.Context) error {
		review, err := s.find(ctx, cred, entityID, reviewID)
		if err != nil {
			return err
		}
		if review.IsOwnReview {
			return domain.NewError(domain.ErrOwnReview, "You cannot flag your own review.", nil)
		}
		flag, err = s.api.FlagReview(ctx, cred.Token, entityID, reviewID, reason)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("flag review: %w", err)
	}

	if flag.ReviewID == "" {
		flag.ReviewID = reviewID
	}
	if flag.Reason == "" {
		flag.Reason = reason
	}
	flag.Status = domain.FlagPending
	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = s.now().UTC()
	}
	s.log.Info().Str("eatery", entityID).Str("review", reviewID).Str("username", cred.Username).Msg("review flagged")
	return flag, nil
}

// mutate runs op and the follow-up refresh as one serialized unit for entityID.
func (s *ReviewLifecycle) mutate(ctx context.Context, cred domain.Credential, entityID, op string, fn func(ctx context.Context) error) (*ports.EntityReviews, error) {
	var snap *ports.EntityReviews
	err := s.serial.Do(ctx, entityID, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return err
		}
		var err error
		snap, err = s.refresh(ctx, cred, entityID)
		if err != nil {
			s.invalidate(entityID)
			return fmt.Errorf("review saved, refresh failed: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Info().Err(err).Str("eatery", entityID).Str("op", op).Msg("review mutation failed")
		return nil, fmt.Errorf("%s review: %w", op, err)
	}
	s.log.Info().Str("eatery", entityID).Str("op", op).Str("username", cred.Username).Msg("review mutation applied")
	return snap, nil
}

// refresh fetches the list and summary concurrently and publishes them
// together. When the two disagree on the review count the summary is
// recomputed from the list.
func (s *ReviewLifecycle) refresh(ctx context.Context, cred domain.Credential, entityID string) (*ports.EntityReviews, error) {
	var (
		reviews []domain.Review
		summary domain.RatingSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviews, err = s.api.ListReviews(gctx, cred.Token, entityID)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.api.Ratings(gctx, cred.Token, entityID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].EntityID == "" {
			reviews[i].EntityID = entityID
		}
		reviews[i].IsOwnReview = reviews[i].IsOwnReview || ownedBy(reviews[i], cred.Username)
	}
	if summary.TotalReviews != len(reviews) {
		s.log.Debug().Str("eatery", entityID).
			Int("summary_total", summary.TotalReviews).
			Int("listed", len(reviews)).
			Msg("rating summary out of step with list, recomputing")
		summary = domain.SummarizeReviews(reviews)
	}

	snap := &ports.EntityReviews{
		EntityID:  entityID,
		Reviews:   reviews,
		Summary:   summary,
		FetchedAt: s.now().UTC(),
		Viewer:    cred.Username,
	}
	s.mu.Lock()
	s.snapshots[entityID] = snap
	s.mu.Unlock()
	return snap, nil
}

// find locates a review in the current snapshot, refreshing once on a miss or
// when the snapshot was loaded for another user. It must run inside the
// entity's serialized section.
func (s *ReviewLifecycle) find(ctx context.Context, cred domain.Credential, entityID, reviewID string) (*domain.Review, error) {
	if snap, ok := s.Snapshot(entityID); ok && snap.Viewer == cred.Username {
		if r := lookupReview(snap, reviewID); r != nil {
			return r, nil
		}
	}
	snap, err := s.refresh(ctx, cred, entityID)
	if err != nil {
		return nil, err
	}
	if r := lookupReview(snap, reviewID); r != nil {
		return r, nil
	}
	return nil, domain.NewError(domain.ErrNotFound, "Review not found.", nil)
}

func (s *ReviewLifecycle) authored(ctx context.Context, cred domain.Credential, entityID, reviewID string) (*domain.Review, error) {
	review, err := s.find(ctx, cred, entityID, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsOwnReview {
		return nil, domain.NewError(domain.ErrNotAuthor, "You can only change your own review.", nil)
	}
	return review, nil
}

func (s *ReviewLifecycle) invalidate(entityID string) {
	s.mu.Lock()
	delete(s.snapshots, entityID)
	s.mu.Unlock()
}

func (s *ReviewLifecycle) session() (domain.Credential, error) {
	cred, ok := s.identity.Credential()
	if !ok {
		return domain.Credential{}, domain.NewError(domain.ErrUnauthorized, "Please sign in to manage reviews.", nil)
	}
	return cred, nil
}

func validateReview(entityID string, in domain.ReviewInput) error {
	var msgs []string
	if strings.TrimSpace(entityID) == "" {
		msgs = append(msgs, "eatery id is required")
	}
	in.TextFeedback = strings.TrimSpace(in.TextFeedback)
	msgs = append(msgs, validation.Check(in)...)
	if len(msgs) > 0 {
		return domain.ValidationError(msgs...)
	}
	return nil
}

func normalizeInput(in domain.ReviewInput) domain.ReviewInput {
	in.TextFeedback = strings.TrimSpace(in.TextFeedback)
	return in
}

func lookupReview(snap *ports.EntityReviews, reviewID string) *domain.Review {
	for i := range snap.Reviews {
		if snap.Reviews[i].ID == reviewID {
			r := snap.Reviews[i]
			return &r
		}
	}
	return nil
}

func ownedBy(r domain.Review, username string) bool {
	if username == "" {
		return false
	}
	return strings.EqualFold(r.AuthorID, username) || strings.EqualFold(r.AuthorAlias, username)
}
