package ports

import (
	"context"
	"time"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// SessionService is the signed-in user context consumed by the transport layer.
type SessionService interface {
	SignIn(ctx context.Context, username, password string) (*domain.UserProfile, error)
	SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AuthResult, error)
	SignOut(ctx context.Context)
	CurrentUser() *domain.UserProfile
	RequireRole(role domain.Role) error
	UpdatePreferences(ctx context.Context, preferences string) (*domain.UserProfile, error)
	UpdateEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	UpdatePassword(ctx context.Context, password string) error
}

// EntityReviews is a consistent snapshot of an eatery's reviews and the
// summary computed from the same review set.
type EntityReviews struct {
	EntityID  string               `json:"entityId"`
	Reviews   []domain.Review      `json:"reviews"`
	Summary   domain.RatingSummary `json:"summary"`
	FetchedAt time.Time            `json:"fetchedAt"`
	// Viewer is the username IsOwnReview was derived for.
	Viewer    string               `json:"-"`
}

// ReviewService orchestrates the signed-in user's reviews.
type ReviewService interface {
	Load(ctx context.Context, entityID string) (*EntityReviews, error)
	MyReview(ctx context.Context, entityID string) (*domain.Review, error)
	Create(ctx context.Context, entityID string, in domain.ReviewInput) (*EntityReviews, error)
	Update(ctx context.Context, entityID, reviewID string, in domain.ReviewInput) (*EntityReviews, error)
	Delete(ctx context.Context, entityID, reviewID string) (*EntityReviews, error)
	Flag(ctx context.Context, entityID, reviewID, reason string) (*domain.Flag, error)
}

// Dashboard is the joined result of the admin overview requests.
type Dashboard struct {
	Metrics       *domain.DashboardMetrics `json:"metrics"`
	Flags         []domain.Flag            `json:"flags"`
	RecentActions []domain.AdminAction     `json:"recentActions"`
	ActionLog     []domain.AdminAction     `json:"actionLog"`
}

// ModerationService is the admin-only workflow.
type ModerationService interface {
	Dashboard(ctx context.Context, status domain.FlagStatus) (*Dashboard, error)
	ListFlags(ctx context.Context, status domain.FlagStatus) ([]domain.Flag, error)
	FlagsByReason(ctx context.Context, reason string, status domain.FlagStatus) ([]domain.Flag, error)
	ResolveFlag(ctx context.Context, flagID string, action domain.ResolveAction, notes string) (*domain.Flag, error)
	HideReview(ctx context.Context, reviewID, reason string) error
	DeleteReview(ctx context.Context, reviewID, reason string) error
}

// Recommendations holds the two independently fetched lists. An error on one
// half leaves the other usable.
type Recommendations struct {
	Nearby          []domain.Recommendation `json:"nearby"`
	Personalised    []domain.Recommendation `json:"personalised"`
	Location        *domain.Coordinates     `json:"location,omitempty"`
	NearbyErr       error                   `json:"-"`
	PersonalisedErr error                   `json:"-"`
}

// RecommendationService fetches the home page suggestions.
type RecommendationService interface {
	Fetch(ctx context.Context) (*Recommendations, error)
}

// RewardService covers the points balance and redemption.
type RewardService interface {
	Balance(ctx context.Context) (*domain.PointsBalance, error)
	Catalog(ctx context.Context) ([]domain.Reward, error)
	Redeem(ctx context.Context, rewardID string) (*domain.Redemption, error)
}
