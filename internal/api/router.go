package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/eggrusher04/HealthyAuraProject/docs"
	"github.com/eggrusher04/HealthyAuraProject/internal/api/handler"
	"github.com/eggrusher04/HealthyAuraProject/internal/api/middleware"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

// Session is the session surface the router needs: the service itself and
// the credential read by the auth middleware.
type Session interface {
	ports.SessionService
	middleware.Identity
}

// Dependencies are the services the BFF exposes.
type Dependencies struct {
	Session         Session
	Reviews         ports.ReviewService
	Moderation      ports.ModerationService
	Recommendations ports.RecommendationService
	Rewards         ports.RewardService
	// Readiness is pinged by /health/ready, keyed by dependency name.
	Readiness map[string]ports.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddleware("healthyaura_bff"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Session)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)
	moderationHandler := handler.NewModerationHandler(deps.Moderation)
	recommendationHandler := handler.NewRecommendationHandler(deps.Recommendations)
	rewardHandler := handler.NewRewardHandler(deps.Rewards)
	healthHandler := handler.NewHealthHandler(deps.Readiness)

	requireSession := middleware.RequireSession(deps.Session)

	// --- Session routes ---
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/signup", sessionHandler.SignUp)
	e.POST("/session/logout", sessionHandler.Logout)

	me := e.Group("/session/me", requireSession)
	me.GET("", sessionHandler.Me)
	me.PUT("/preferences", sessionHandler.UpdatePreferences)
	me.PUT("/email", sessionHandler.UpdateEmail)
	me.PUT("/password", sessionHandler.UpdatePassword)

	// --- Reviews ---
	eateries := e.Group("/eateries/:id", requireSession)
	eateries.GET("/reviews", reviewHandler.List)
	eateries.GET("/reviews/mine", reviewHandler.Mine)
	eateries.POST("/reviews", reviewHandler.Create)
	eateries.PUT("/reviews/:reviewId", reviewHandler.Update)
	eateries.DELETE("/reviews/:reviewId", reviewHandler.Delete)
	eateries.POST("/reviews/:reviewId/flag", reviewHandler.Flag)
	eateries.GET("/stars", reviewHandler.Stars)

	// --- Home ---
	e.GET("/recommendations", recommendationHandler.Fetch, requireSession)

	rewards := e.Group("/rewards", requireSession)
	rewards.GET("/me", rewardHandler.Balance)
	rewards.GET("/catalog", rewardHandler.Catalog)
	rewards.POST("/:id/redeem", rewardHandler.Redeem)

	// --- Moderation (ADMIN only) ---
	admin := e.Group("/admin", requireSession, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", moderationHandler.Dashboard)
	admin.GET("/flags", moderationHandler.Flags)
	admin.PUT("/flags/:id/resolve", moderationHandler.Resolve)
	admin.PUT("/reviews/:id/hide", moderationHandler.Hide)
	admin.DELETE("/reviews/:id", moderationHandler.Delete)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are backend and store up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
