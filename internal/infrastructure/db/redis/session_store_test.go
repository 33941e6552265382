package redis

import (
	"context"
	"testing"
	"time"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

var _ ports.TokenStore = (*SessionStore)(nil)

func TestSessionStore_Keys(t *testing.T) {
	s := NewSessionStore(nil, "")
	if got := s.key(ports.TokenKey); got != "default:token" {
		t.Fatalf("expected default:token, got %s", got)
	}
	s = NewSessionStore(nil, "kiosk-3")
	if got := s.key(ports.ProfileKey); got != "kiosk-3:healthyaura_user" {
		t.Fatalf("expected kiosk-3:healthyaura_user, got %s", got)
	}
}

func TestOpen_Unreachable(t *testing.T) {
	_, _, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping error for unreachable server")
	}
}
