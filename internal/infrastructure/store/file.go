// Package store holds the local TokenStore implementations.
package store

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

const (
	fileName = "session.json"

	saltSize  = 16
	nonceSize = 24
)

// ErrSealed is returned when the session file cannot be opened with the
// configured passphrase.
var ErrSealed = errors.New("session file cannot be unsealed")

// record is the plain on-disk layout, keyed like browser local storage.
type record struct {
	Token   string `json:"token,omitempty"`
	Profile string `json:"healthyaura_user,omitempty"`
}

// sealed wraps an encrypted record. Box is nonce||ciphertext.
type sealed struct {
	Salt []byte `json:"salt"`
	Box  []byte `json:"box"`
}

// FileStore persists the session as a 0600 JSON file. With a passphrase the
// file is sealed with NaCl secretbox under a scrypt-derived key.
type FileStore struct {
	path       string
	passphrase []byte

	mu   sync.Mutex
	salt []byte
	key  *[32]byte
}

// NewFileStore returns a store writing dir/session.json.
func NewFileStore(dir, passphrase string) *FileStore {
	s := &FileStore{path: filepath.Join(dir, fileName)}
	if passphrase != "" {
		s.passphrase = []byte(passphrase)
	}
	return s
}

// Path returns the session file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (ports.PersistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		return ports.PersistedSession{}, err
	}
	out := ports.PersistedSession{Token: rec.Token}
	if rec.Profile != "" {
		out.Profile = []byte(rec.Profile)
	}
	return out, nil
}

func (s *FileStore) SaveToken(_ context.Context, token string) error {
	return s.update(func(r *record) { r.Token = token })
}

func (s *FileStore) SaveProfile(_ context.Context, raw []byte) error {
	return s.update(func(r *record) { r.Profile = string(raw) })
}

func (s *FileStore) RemoveProfile(_ context.Context) error {
	return s.update(func(r *record) { r.Profile = "" })
}

// Clear deletes the file.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}

// Ping checks that the directory is writable.
func (s *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	f, err := os.CreateTemp(dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("session dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func (s *FileStore) update(fn func(*record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		// An unreadable file is replaced rather than blocking new sessions.
		rec = record{}
	}
	fn(&rec)
	if rec == (record{}) {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	}
	return s.write(rec)
}

func (s *FileStore) read() (record, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return record{}, nil
		}
		return record{}, fmt.Errorf("read session file: %w", err)
	}
	if len(b) == 0 {
		return record{}, nil
	}
	if s.passphrase != nil {
		if b, err = s.open(b); err != nil {
			return record{}, err
		}
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return record{}, fmt.Errorf("decode session file: %w", err)
	}
	return rec, nil
}

func (s *FileStore) write(rec record) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if s.passphrase != nil {
		if b, err = s.seal(b); err != nil {
			return err
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// deriveKey caches the key for the last salt seen.
func (s *FileStore) deriveKey(salt []byte) (*[32]byte, error) {
	if s.key != nil && string(s.salt) == string(salt) {
		return s.key, nil
	}
	raw, err := scrypt.Key(s.passphrase, salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], raw)
	s.salt = append([]byte(nil), salt...)
	s.key = &key
	return s.key, nil
}

func (s *FileStore) seal(plain []byte) ([]byte, error) {
	salt := s.salt
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("seal session: %w", err)
		}
	}
	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("seal session: %w", err)
	}
	box := secretbox.Seal(nonce[:], plain, &nonce, key)
	return json.Marshal(sealed{Salt: salt, Box: box})
}

func (s *FileStore) open(b []byte) ([]byte, error) {
	var env sealed
	if err := json.Unmarshal(b, &env); err != nil || len(env.Salt) == 0 || len(env.Box) < nonceSize {
		return nil, ErrSealed
	}
	key, err := s.deriveKey(env.Salt)
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], env.Box[:nonceSize])
	plain, ok := secretbox.Open(nil, env.Box[nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrSealed
	}
	return plain, nil
}
