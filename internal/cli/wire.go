package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/service"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/backend"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/config"
	mongostore "github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/db/mongo"
	redisstore "github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/db/redis"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/store"
)

// sessionStore is a TokenStore that can report readiness.
type sessionStore interface {
	ports.TokenStore
	ports.Pinger
}

// core is the backend client, the token store and the session built on them.
type core struct {
	cfg     *config.Config
	log     zerolog.Logger
	client  *backend.Client
	store   sessionStore
	session *service.SessionManager
	close   func(ctx context.Context) error
}

func (a *app) open(ctx context.Context) (*core, error) {
	cfg := a.setup()

	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, a.log)
	session := service.NewSessionManager(st, client, service.SessionConfig{
		Lockout: domain.LockoutPolicy{
			MaxAttempts: cfg.Session.LockoutMaxAttempts,
			Window:      cfg.Session.LockoutWindow,
		},
		AutoLoginOnSignUp: cfg.Session.SignUpAutoLogin,
		RefreshTimeout:    cfg.Backend.Timeout,
	}, a.log)

	return &core{
		cfg:     cfg,
		log:     a.log,
		client:  client,
		store:   st,
		session: session,
		close:   closer,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (sessionStore, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Store.Driver {
	case config.DriverMemory:
		return store.NewMemoryStore(), noop, nil
	case config.DriverRedis:
		st, closeFn, err := redisstore.Open(ctx, redisstore.Config{
			Addr:      cfg.Redis.Addr,
			DB:        cfg.Redis.DB,
			Namespace: cfg.Store.Namespace,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return st, func(context.Context) error { return closeFn() }, nil
	case config.DriverMongo:
		st, closeFn, err := mongostore.Open(ctx, mongostore.Config{
			URI:       cfg.Mongo.URI,
			Database:  cfg.Mongo.Database,
			Namespace: cfg.Store.Namespace,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo store: %w", err)
		}
		return st, closeFn, nil
	default:
		return store.NewFileStore(cfg.Store.Dir, cfg.Store.Passphrase), noop, nil
	}
}
