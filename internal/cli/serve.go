package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eggrusher04/HealthyAuraProject/internal/api"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/service"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/geo"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/queue"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local API for the browser shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.close(closeCtx); err != nil {
			c.log.Warn().Err(err).Msg("failed to close token store")
		}
	}()

	boot := c.session.Boot(ctx)
	defer boot.Cancel()

	dispatcher := queue.NewDispatcher(0, c.log)
	dispatcher.Start(ctx)

	locator := geo.HintLocator{Fallback: geo.NewStaticLocator(c.cfg.Recommendations.HomeLat, c.cfg.Recommendations.HomeLng)}

	e := api.NewRouter(api.Dependencies{
		Session:    c.session,
		Reviews:    service.NewReviewLifecycle(c.client, c.session, dispatcher, c.log),
		Moderation: service.NewModerationWorkflow(c.client, c.session, c.log),
		Recommendations: service.NewRecommendationFetcher(c.client, locator, c.session, service.RecommendationConfig{
			Limit:         c.cfg.Recommendations.Limit,
			LocateTimeout: c.cfg.Recommendations.LocateTimeout,
		}, c.log),
		Rewards: service.NewRewardService(c.client, c.session, c.cfg.CatalogCacheTTL, c.log),
		Readiness: map[string]ports.Pinger{
			"backend": c.client,
			"store":   c.store,
		},
	}, c.log)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + c.cfg.Port
		c.log.Info().Str("addr", addr).Str("backend", c.cfg.Backend.URL).Str("store", c.cfg.Store.Driver).Msg("HTTP server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		c.log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	c.log.Info().Msg("HTTP server stopped")
	return nil
}
