package ports

import (
	"context"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// The backend ports take the bearer token explicitly. An empty token falls
// back to the default header installed through SessionHeaders.

// SessionHeaders controls the default Authorization header of the backend client.
type SessionHeaders interface {
	SetBearer(token string)
	ClearBearer()
}

// AuthAPI covers login and registration.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)
	SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AuthResult, error)
}

// ProfileAPI covers the signed-in user's profile.
type ProfileAPI interface {
	GetProfile(ctx context.Context, token string) (*domain.UserProfile, error)
	UpdatePreferences(ctx context.Context, token, preferences string) (*domain.UserProfile, error)
	UpdateEmail(ctx context.Context, token, email string) error
	UpdatePassword(ctx context.Context, token, password string) error
}

// ReviewAPI covers reviews of a single eatery.
type ReviewAPI interface {
	ListReviews(ctx context.Context, token, entityID string) ([]domain.Review, error)
	Ratings(ctx context.Context, token, entityID string) (domain.RatingSummary, error)
	MyReview(ctx context.Context, token, entityID string) (*domain.Review, error)
	CreateReview(ctx context.Context, token, entityID string, in domain.ReviewInput) (*domain.Review, error)
	UpdateReview(ctx context.Context, token, entityID, reviewID string, in domain.ReviewInput) (*domain.Review, error)
	DeleteReview(ctx context.Context, token, entityID, reviewID string) error
	FlagReview(ctx context.Context, token, entityID, reviewID, reason string) (*domain.Flag, error)
}

// ModerationAPI covers the admin dashboard and moderation actions.
type ModerationAPI interface {
	DashboardMetrics(ctx context.Context, token string) (*domain.DashboardMetrics, error)
	ListFlags(ctx context.Context, token string, status domain.FlagStatus) ([]domain.Flag, error)
	FlagsByReason(ctx context.Context, token, reason string, status domain.FlagStatus) ([]domain.Flag, error)
	RecentActions(ctx context.Context, token string) ([]domain.AdminAction, error)
	ActionLog(ctx context.Context, token string) ([]domain.AdminAction, error)
	ResolveFlag(ctx context.Context, token, flagID string, action domain.ResolveAction, notes string) (*domain.Flag, error)
	HideReview(ctx context.Context, token, reviewID, reason string) error
	RemoveReview(ctx context.Context, token, reviewID, reason string) error
}

// RecommendationAPI returns ranked eatery suggestions.
type RecommendationAPI interface {
	Personalised(ctx context.Context, token string) ([]domain.Recommendation, error)
	Nearby(ctx context.Context, token string, at domain.Coordinates) ([]domain.Recommendation, error)
}

// RewardAPI covers points and the reward catalog.
type RewardAPI interface {
	Points(ctx context.Context, token string) (*domain.PointsBalance, error)
	Catalog(ctx context.Context, token string) ([]domain.Reward, error)
	Redeem(ctx context.Context, token, rewardID string) (*domain.Redemption, error)
}

// Backend is the full remote surface.
type Backend interface {
	SessionHeaders
	AuthAPI
	ProfileAPI
	ReviewAPI
	ModerationAPI
	RecommendationAPI
	RewardAPI
}

// Locator resolves the device position. Implementations may block; callers
// bound the wait with ctx.
type Locator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}
