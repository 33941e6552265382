package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

var (
	_ ports.TokenStore = (*FileStore)(nil)
	_ ports.TokenStore = (*MemoryStore)(nil)
	_ ports.Pinger     = (*FileStore)(nil)
)

func exercise(t *testing.T, s ports.TokenStore) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty store returned error: %v", err)
	}
	if got.Token != "" || len(got.Profile) != 0 {
		t.Fatalf("expected empty session, got %+v", got)
	}

	profile := []byte(`{"username":"alice","role":"USER"}`)
	if err := s.SaveToken(ctx, "tok-1"); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	if err := s.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile returned error: %v", err)
	}
	got, _ = s.Load(ctx)
	if got.Token != "tok-1" || !bytes.Equal(got.Profile, profile) {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := s.RemoveProfile(ctx); err != nil {
		t.Fatalf("RemoveProfile returned error: %v", err)
	}
	got, _ = s.Load(ctx)
	if got.Token != "tok-1" || len(got.Profile) != 0 {
		t.Fatalf("expected only the token left, got %+v", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
	got, _ = s.Load(ctx)
	if got.Token != "" || len(got.Profile) != 0 {
		t.Fatalf("expected cleared session, got %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestFileStore_Plain(t *testing.T) {
	s := NewFileStore(t.TempDir(), "")
	exercise(t, s)
}

func TestFileStore_Permissions(t *testing.T) {
	s := NewFileStore(t.TempDir(), "")
	if err := s.SaveToken(context.Background(), "tok"); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}
}

func TestFileStore_Sealed(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, "correct horse")
	exercise(t, s)

	ctx := context.Background()
	if err := s.SaveToken(ctx, "secret-token"); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Contains(raw, []byte("secret-token")) {
		t.Fatalf("sealed file must not contain the token in clear")
	}

	reopened := NewFileStore(dir, "correct horse")
	got, err := reopened.Load(ctx)
	if err != nil || got.Token != "secret-token" {
		t.Fatalf("expected token after reopen, got %+v %v", got, err)
	}

	wrong := NewFileStore(dir, "battery staple")
	if _, err := wrong.Load(ctx); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	s := NewFileStore(t.TempDir(), "")
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
	// A write replaces the unreadable file.
	if err := s.SaveToken(context.Background(), "fresh"); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	got, err := s.Load(context.Background())
	if err != nil || got.Token != "fresh" {
		t.Fatalf("unexpected session: %+v %v", got, err)
	}
}
