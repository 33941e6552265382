package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

// SessionStore keeps the persisted session in two Redis keys:
// <namespace>:token and <namespace>:healthyaura_user. Neither key expires;
// the credential's own expiry is checked at boot.
type SessionStore struct {
	client    *redis.Client
	namespace string
}

// NewSessionStore wraps client. An empty namespace uses "default".
func NewSessionStore(client *redis.Client, namespace string) *SessionStore {
	if namespace == "" {
		namespace = "default"
	}
	return &SessionStore{client: client, namespace: namespace}
}

func (s *SessionStore) key(name string) string {
	return s.namespace + ":" + name
}

func (s *SessionStore) Load(ctx context.Context) (ports.PersistedSession, error) {
	vals, err := s.client.MGet(ctx, s.key(ports.TokenKey), s.key(ports.ProfileKey)).Result()
	if err != nil {
		return ports.PersistedSession{}, fmt.Errorf("load session: %w", err)
	}
	var out ports.PersistedSession
	if tok, ok := vals[0].(string); ok {
		out.Token = tok
	}
	if raw, ok := vals[1].(string); ok && raw != "" {
		out.Profile = []byte(raw)
	}
	return out, nil
}

func (s *SessionStore) SaveToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key(ports.TokenKey), token, 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SessionStore) SaveProfile(ctx context.Context, raw []byte) error {
	if err := s.client.Set(ctx, s.key(ports.ProfileKey), raw, 0).Err(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SessionStore) RemoveProfile(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(ports.ProfileKey)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("remove profile: %w", err)
	}
	return nil
}

// Clear deletes both keys in one command.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(ports.TokenKey), s.key(ports.ProfileKey)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
