// Package redis provides the Redis-backed session store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config captures the Redis connection settings and the key namespace.
type Config struct {
	Addr      string
	DB        int
	Namespace string
	Timeout   time.Duration
}

// Open connects, pings and returns a SessionStore together with a closer for
// the underlying client.
func Open(ctx context.Context, cfg Config) (*SessionStore, func() error, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewSessionStore(client, cfg.Namespace), client.Close, nil
}
