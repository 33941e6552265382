package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

const sessionCollection = "client_sessions"

// SessionStore keeps one session document per namespace.
type SessionStore struct {
	coll      *mongo.Collection
	namespace string
}

func NewSessionStore(db *mongo.Database, namespace string) *SessionStore {
	if namespace == "" {
		namespace = "default"
	}
	return &SessionStore{coll: db.Collection(sessionCollection), namespace: namespace}
}

type mongoSession struct {
	ID        string `bson:"_id"`
	Token     string `bson:"token,omitempty"`
	Profile   string `bson:"healthyaura_user,omitempty"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *SessionStore) Load(ctx context.Context) (ports.PersistedSession, error) {
	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.namespace}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.PersistedSession{}, nil
		}
		return ports.PersistedSession{}, fmt.Errorf("find session: %w", err)
	}
	out := ports.PersistedSession{Token: doc.Token}
	if doc.Profile != "" {
		out.Profile = []byte(doc.Profile)
	}
	return out, nil
}

func (s *SessionStore) SaveToken(ctx context.Context, token string) error {
	return s.set(ctx, ports.TokenKey, token)
}

func (s *SessionStore) SaveProfile(ctx context.Context, raw []byte) error {
	return s.set(ctx, ports.ProfileKey, string(raw))
}

func (s *SessionStore) set(ctx context.Context, field, value string) error {
	update := bson.M{"$set": bson.M{field: value, "updated_at": time.Now().Unix()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.namespace}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s: %w", field, err)
	}
	return nil
}

func (s *SessionStore) RemoveProfile(ctx context.Context) error {
	update := bson.M{
		"$unset": bson.M{ports.ProfileKey: ""},
		"$set":   bson.M{"updated_at": time.Now().Unix()},
	}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.namespace}, update); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}
	return nil
}

// Clear removes the whole document.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.namespace}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
