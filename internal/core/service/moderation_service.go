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
)

// ModerationWorkflow is the admin-only review moderation flow. Every operation
// checks the ADMIN role before touching the network.
type ModerationWorkflow struct {
	api      ports.ModerationAPI
	identity Identity
	log      zerolog.Logger
	now      func() time.Time

	mu sync.Mutex
	// flags is the last known state of each flag seen by this client.
	flags map[string]domain.Flag
	// removals holds review ids with a flag resolved as REMOVE.
	removals map[string]struct{}
}

// NewModerationWorkflow returns a ModerationService implementation.
func NewModerationWorkflow(api ports.ModerationAPI, identity Identity, log zerolog.Logger) *ModerationWorkflow {
	return &ModerationWorkflow{
		api:      api,
		identity: identity,
		log:      log.With().Str("component", "moderation").Logger(),
		now:      time.Now,
		flags:    make(map[string]domain.Flag),
		removals: make(map[string]struct{}),
	}
}

// Dashboard loads metrics, flags, the admin's recent actions and the full
// action log concurrently. It fails if any part fails.
func (m *ModerationWorkflow) Dashboard(ctx context.Context, status domain.FlagStatus) (*ports.Dashboard, error) {
	cred, err := m.admin()
	if err != nil {
		return nil, err
	}
	status = defaultStatus(status)

	var d ports.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Metrics, err = m.api.DashboardMetrics(gctx, cred.Token)
		return err
	})
	g.Go(func() error {
		var err error
		d.Flags, err = m.api.ListFlags(gctx, cred.Token, status)
		return err
	})
	g.Go(func() error {
		var err error
		d.RecentActions, err = m.api.RecentActions(gctx, cred.Token)
		return err
	})
	g.Go(func() error {
		var err error
		d.ActionLog, err = m.api.ActionLog(gctx, cred.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	m.remember(d.Flags)
	return &d, nil
}

// ListFlags returns flags in status, PENDING by default.
func (m *ModerationWorkflow) ListFlags(ctx context.Context, status domain.FlagStatus) ([]domain.Flag, error) {
	cred, err := m.admin()
	if err != nil {
		return nil, err
	}
	flags, err := m.api.ListFlags(ctx, cred.Token, defaultStatus(status))
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	m.remember(flags)
	return flags, nil
}

// FlagsByReason filters flags by a reason substring.
func (m *ModerationWorkflow) FlagsByReason(ctx context.Context, reason string, status domain.FlagStatus) ([]domain.Flag, error) {
	cred, err := m.admin()
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return m.ListFlags(ctx, status)
	}
	flags, err := m.api.FlagsByReason(ctx, cred.Token, reason, defaultStatus(status))
	if err != nil {
		return nil, fmt.Errorf("flags by reason: %w", err)
	}
	m.remember(flags)
	return flags, nil
}

// ResolveFlag moves a pending flag to RESOLVED (REMOVE) or DISMISSED
// (DISMISS). REMOVE records intent only; hiding or deleting the review is a
// separate step.
func (m *ModerationWorkflow) ResolveFlag(ctx context.Context, flagID string, action domain.ResolveAction, notes string) (*domain.Flag, error) {
	cred, err := m.admin()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(flagID) == "" {
		return nil, domain.ValidationError("flag id is required")
	}
	if action != domain.ActionRemove && action != domain.ActionDismiss {
		return nil, domain.ValidationError("action must be one of: REMOVE DISMISS")
	}

	m.mu.Lock()
	known, seen := m.flags[flagID]
	m.mu.Unlock()
	if seen && !known.Status.CanTransitionTo(action.Outcome()) {
		return nil, domain.NewError(domain.ErrInvalidTransition, "Flag has already been resolved.", nil)
	}

	flag, err := m.api.ResolveFlag(ctx, cred.Token, flagID, action, strings.TrimSpace(notes))
	if err != nil {
		return nil, fmt.Errorf("resolve flag: %w", err)
	}
	if flag.ID == "" {
		flag.ID = flagID
	}
	if flag.ReviewID == "" {
		flag.ReviewID = known.ReviewID
	}
	flag.Status = action.Outcome()
	if flag.ReviewedAt == nil {
		at := m.now().UTC()
		flag.ReviewedAt = &at
	}

	m.mu.Lock()
	m.flags[flag.ID] = *flag
	if action == domain.ActionRemove && flag.ReviewID != "" {
		m.removals[flag.ReviewID] = struct{}{}
	}
	m.mu.Unlock()

	m.log.Info().
		Str("admin", cred.Username).
		Str("flag", flag.ID).
		Str("action", string(action)).
		Msg("flag resolved")
	return flag, nil
}

// HideReview hides a review from public listings.
func (m *ModerationWorkflow) HideReview(ctx context.Context, reviewID, reason string) error {
	cred, err := m.admin()
	if err != nil {
		return err
	}
	if err := reviewAction(reviewID, reason); err != nil {
		return err
	}
	m.checkRemoval(reviewID, "hide")

	if err := m.api.HideReview(ctx, cred.Token, reviewID, strings.TrimSpace(reason)); err != nil {
		return fmt.Errorf("hide review: %w", err)
	}
	m.log.Info().Str("admin", cred.Username).Str("review", reviewID).Msg("review hidden")
	return nil
}

// DeleteReview permanently removes a review.
func (m *ModerationWorkflow) DeleteReview(ctx context.Context, reviewID, reason string) error {
	cred, err := m.admin()
	if err != nil {
		return err
	}
	if err := reviewAction(reviewID, reason); err != nil {
		return err
	}
	m.checkRemoval(reviewID, "delete")

	if err := m.api.RemoveReview(ctx, cred.Token, reviewID, strings.TrimSpace(reason)); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	m.mu.Lock()
	delete(m.removals, reviewID)
	m.mu.Unlock()
	m.log.Info().Str("admin", cred.Username).Str("review", reviewID).Msg("review deleted")
	return nil
}

// RemovalResolved reports whether a flag on reviewID was resolved as REMOVE
// by this client.
func (m *ModerationWorkflow) RemovalResolved(reviewID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.removals[reviewID]
	return ok
}

func (m *ModerationWorkflow) admin() (domain.Credential, error) {
	if err := m.identity.RequireRole(domain.RoleAdmin); err != nil {
		return domain.Credential{}, err
	}
	cred, ok := m.identity.Credential()
	if !ok {
		return domain.Credential{}, domain.NewError(domain.ErrUnauthorized, "", nil)
	}
	return cred, nil
}

// checkRemoval logs when a review is hidden or deleted without a REMOVE
// resolution. It is guidance only and never blocks the action.
func (m *ModerationWorkflow) checkRemoval(reviewID, op string) {
	if !m.RemovalResolved(reviewID) {
		m.log.Warn().Str("review", reviewID).Str("op", op).Msg("no flag resolved as REMOVE for this review")
	}
}

func (m *ModerationWorkflow) remember(flags []domain.Flag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range flags {
		if f.ID != "" {
			m.flags[f.ID] = f
		}
	}
}

func reviewAction(reviewID, reason string) error {
	var msgs []string
	if strings.TrimSpace(reviewID) == "" {
		msgs = append(msgs, "review id is required")
	}
	if strings.TrimSpace(reason) == "" {
		msgs = append(msgs, "reason is required")
	}
	if len(msgs) > 0 {
		return domain.ValidationError(msgs...)
	}
	return nil
}

func defaultStatus(s domain.FlagStatus) domain.FlagStatus {
	if s == "" {
		return domain.FlagPending
	}
	return s
}
