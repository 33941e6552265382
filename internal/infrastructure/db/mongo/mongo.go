// Package mongo provides the MongoDB-backed session store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "healthyaura-client"
)

// Config captures the MongoDB connection settings and the session document id.
type Config struct {
	URI       string
	Database  string
	Namespace string
	Timeout   time.Duration
}

// Open connects, pings and returns a SessionStore together with a closer that
// disconnects the client.
func Open(ctx context.Context, cfg Config) (*SessionStore, func(context.Context) error, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	store := NewSessionStore(client.Database(cfg.Database), cfg.Namespace)
	return store, client.Disconnect, nil
}
