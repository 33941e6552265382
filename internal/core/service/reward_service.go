package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

const (
	defaultCatalogTTL = 5 * time.Minute
	catalogCacheSize  = 16
)

var (
	catalogCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "healthyaura",
		Name:      "reward_catalog_cache_hits_total",
		Help:      "Reward catalog lookups served from cache.",
	})
	catalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "healthyaura",
		Name:      "reward_catalog_cache_misses_total",
		Help:      "Reward catalog lookups that went to the backend.",
	})
)

// PointsIdentity is an Identity whose cached points can be updated.
type PointsIdentity interface {
	Identity
	SetPoints(points int)
}

// RewardService reads the points balance and redeems catalog rewards. The
// points check before redemption is a UI gate; the backend decides.
type RewardService struct {
	api      ports.RewardAPI
	identity PointsIdentity
	catalog  *expirable.LRU[string, []domain.Reward]
	log      zerolog.Logger
}

// NewRewardService returns a RewardService. ttl <= 0 uses a five minute
// catalog cache.
func NewRewardService(api ports.RewardAPI, identity PointsIdentity, ttl time.Duration, log zerolog.Logger) *RewardService {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &RewardService{
		api:      api,
		identity: identity,
		catalog:  expirable.NewLRU[string, []domain.Reward](catalogCacheSize, nil, ttl),
		log:      log.With().Str("component", "rewards").Logger(),
	}
}

// Balance fetches the current points and mirrors them onto the session.
func (s *RewardService) Balance(ctx context.Context) (*domain.PointsBalance, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	bal, err := s.api.Points(ctx, cred.Token)
	if err != nil {
		return nil, fmt.Errorf("points balance: %w", err)
	}
	bal.TotalPoints = max(bal.TotalPoints, 0)
	s.identity.SetPoints(bal.TotalPoints)
	return bal, nil
}

// Catalog returns the reward catalog, cached per user.
func (s *RewardService) Catalog(ctx context.Context) ([]domain.Reward, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	if items, ok := s.catalog.Get(cred.Username); ok {
		catalogCacheHits.Inc()
		return items, nil
	}
	catalogCacheMisses.Inc()

	items, err := s.api.Catalog(ctx, cred.Token)
	if err != nil {
		return nil, fmt.Errorf("reward catalog: %w", err)
	}
	s.catalog.Add(cred.Username, items)
	return items, nil
}

// Redeem exchanges points for a reward.
func (s *RewardService) Redeem(ctx context.Context, rewardID string) (*domain.Redemption, error) {
	cred, err := s.session()
	if err != nil {
		return nil, err
	}
	rewardID = strings.TrimSpace(rewardID)
	if rewardID == "" {
		return nil, domain.ValidationError("reward id is required")
	}

	reward, err := s.findReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	points := 0
	if u := s.identity.CurrentUser(); u != nil {
		points = u.TotalPoints
	}
	if !reward.RedeemableWith(points) {
		return nil, domain.NewError(domain.ErrInsufficientPoints,
			fmt.Sprintf("You need %d points to redeem %s; you have %d.", reward.PointsRequired, reward.Name, points), nil)
	}

	res, err := s.api.Redeem(ctx, cred.Token, rewardID)
	if err != nil {
		return nil, fmt.Errorf("redeem reward: %w", err)
	}
	if res.RewardID == "" {
		res.RewardID = rewardID
	}
	if res.RewardName == "" {
		res.RewardName = reward.Name
	}
	if res.PointsUsed == 0 {
		res.PointsUsed = reward.PointsRequired
	}

	if bal, err := s.api.Points(ctx, cred.Token); err == nil {
		res.PointsLeft = max(bal.TotalPoints, 0)
	} else {
		s.log.Warn().Err(err).Msg("points refresh after redemption failed")
		res.PointsLeft = max(points-reward.PointsRequired, 0)
	}
	s.identity.SetPoints(res.PointsLeft)

	s.log.Info().Str("username", cred.Username).Str("reward", rewardID).Int("points_left", res.PointsLeft).Msg("reward redeemed")
	return res, nil
}

func (s *RewardService) findReward(ctx context.Context, rewardID string) (domain.Reward, error) {
	items, err := s.Catalog(ctx)
	if err != nil {
		return domain.Reward{}, err
	}
	for _, r := range items {
		if r.ID == rewardID {
			return r, nil
		}
	}
	return domain.Reward{}, domain.NewError(domain.ErrNotFound, "Reward not found.", nil)
}

func (s *RewardService) session() (domain.Credential, error) {
	cred, ok := s.identity.Credential()
	if !ok {
		return domain.Credential{}, domain.NewError(domain.ErrUnauthorized, "", nil)
	}
	return cred, nil
}
