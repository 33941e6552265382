package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

var (
	_ ports.TokenStore = (*SessionStore)(nil)
	_ ports.Pinger     = (*SessionStore)(nil)
)

func TestNewSessionStore_Namespace(t *testing.T) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	s := NewSessionStore(client.Database("healthyaura_client"), "")
	if s.namespace != "default" {
		t.Fatalf("expected default namespace, got %s", s.namespace)
	}
	if s.coll.Name() != sessionCollection {
		t.Fatalf("expected %s collection, got %s", sessionCollection, s.coll.Name())
	}
}

func TestOpen_Unreachable(t *testing.T) {
	_, _, err := Open(context.Background(), Config{
		URI:      "mongodb://127.0.0.1:1",
		Database: "healthyaura_client",
		Timeout:  300 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected ping error for unreachable server")
	}
}
