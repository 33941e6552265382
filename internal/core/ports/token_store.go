package ports

import "context"

// Well-known storage keys for the persisted session.
const (
	TokenKey   = "token"
	ProfileKey = "healthyaura_user"
)

// PersistedSession is the raw persisted state. Missing entries are empty.
type PersistedSession struct {
	Token   string
	Profile []byte
}

// TokenStore is durable client-side storage for the bearer credential and the
// cached profile snapshot. Only SessionManager writes to it.
type TokenStore interface {
	Load(ctx context.Context) (PersistedSession, error)
	SaveToken(ctx context.Context, token string) error
	SaveProfile(ctx context.Context, raw []byte) error
	RemoveProfile(ctx context.Context) error
	// Clear removes the token and the profile together. Clearing an empty
	// store is not an error.
	Clear(ctx context.Context) error
}

// Pinger is implemented by stores and clients that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
