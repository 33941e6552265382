package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
	"github.com/eggrusher04/HealthyAuraProject/internal/pkg/validation"
)

// SessionBackend is the part of the remote API the session talks to.
type SessionBackend interface {
	ports.AuthAPI
	ports.ProfileAPI
	ports.SessionHeaders
}

// Identity is the read side of the session consumed by the other workflows.
type Identity interface {
	Credential() (domain.Credential, bool)
	CurrentUser() *domain.UserProfile
	RequireRole(role domain.Role) error
}

// SessionConfig tunes the session manager.
type SessionConfig struct {
	Lockout domain.LockoutPolicy
	// AutoLoginOnSignUp adopts the token returned by signup as a session.
	AutoLoginOnSignUp bool
	// RefreshTimeout bounds a background profile refresh. Zero means no bound.
	RefreshTimeout time.Duration
}

// SessionManager owns the authenticated user, the lockout table and the
// persisted credential. It is the only writer of the TokenStore.
type SessionManager struct {
	store   ports.TokenStore
	backend SessionBackend
	cfg     SessionConfig
	log     zerolog.Logger
	now     func() time.Time

	mu         sync.RWMutex
	user       *domain.UserProfile
	cred       *domain.Credential
	generation uint64
	cancel     context.CancelFunc
	sessionCtx context.Context

	// writeMu serialises store writes so a refresh cannot land after Clear.
	writeMu sync.Mutex

	lockMu   sync.Mutex
	lockouts map[string]*domain.LockoutRecord
}

// NewSessionManager returns an unauthenticated session. Call Boot to restore
// a persisted one.
func NewSessionManager(store ports.TokenStore, backend SessionBackend, cfg SessionConfig, log zerolog.Logger) *SessionManager {
	if cfg.Lockout.MaxAttempts <= 0 {
		cfg.Lockout.MaxAttempts = domain.MaxFailedAttempts
	}
	if cfg.Lockout.Window <= 0 {
		cfg.Lockout.Window = domain.LockoutWindow
	}
	return &SessionManager{
		store:    store,
		backend:  backend,
		cfg:      cfg,
		log:      log.With().Str("component", "session").Logger(),
		now:      time.Now,
		lockouts: make(map[string]*domain.LockoutRecord),
	}
}

// SetClock replaces the time source. Intended for tests.
func (s *SessionManager) SetClock(now func() time.Time) {
	s.now = now
}

// Boot restores a persisted session. A valid cached profile is surfaced
// immediately and a background refresh is returned; absent or malformed data
// leaves the session unauthenticated and returns nil.
func (s *SessionManager) Boot(ctx context.Context) *Task {
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session store unreadable, starting signed out")
		return nil
	}
	if snap.Token == "" || len(snap.Profile) == 0 {
		return nil
	}

	var cached domain.UserProfile
	if err := json.Unmarshal(snap.Profile, &cached); err != nil || strings.TrimSpace(cached.Username) == "" {
		s.log.Warn().Err(err).Msg("discarding malformed cached profile")
		s.writeMu.Lock()
		if rmErr := s.store.RemoveProfile(ctx); rmErr != nil {
			s.log.Warn().Err(rmErr).Msg("failed to remove malformed profile")
		}
		s.writeMu.Unlock()
		return nil
	}

	cred := domain.Credential{
		Token:     snap.Token,
		Username:  cached.Username,
		Role:      domain.ParseRole(string(cached.Role)),
		ExpiresAt: tokenExpiry(snap.Token),
	}
	if cred.Expired(s.now()) {
		s.log.Info().Str("username", cred.Username).Msg("persisted credential expired")
		s.clearStore(ctx)
		return nil
	}

	cached.Role = cred.Role
	cached.Token = cred.Token
	cached.TotalPoints = max(cached.TotalPoints, 0)
	s.begin(cred, &cached)
	s.backend.SetBearer(cred.Token)
	s.log.Info().Str("username", cred.Username).Msg("session restored")

	return s.RefreshProfile()
}

// SignIn authenticates username, enforcing the local lockout policy before
// any network call.
func (s *SessionManager) SignIn(ctx context.Context, username, password string) (*domain.UserProfile, error) {
	username = strings.TrimSpace(username)
	if msgs := credentialMessages(username, password); len(msgs) > 0 {
		return nil, domain.ValidationError(msgs...)
	}

	if rec := s.Lockout(username); rec.IsLocked(s.now()) {
		s.log.Warn().Str("username", username).Msg("login rejected, account locked")
		return nil, domain.NewError(domain.ErrLockedOut, lockedMessage(rec.Remaining(s.now())), nil)
	}

	res, err := s.backend.Login(ctx, username, password)
	if err == nil && (res == nil || res.Token == "") {
		err = domain.NewError(domain.ErrInvalidServerResponse, "The server did not return a session token.", nil)
	}
	if err != nil {
		if locked := s.registerFailure(username); locked {
			s.log.Warn().Str("username", username).Msg("too many failed logins, account locked")
		} else {
			s.log.Info().Err(err).Str("username", username).Msg("login failed")
		}
		return nil, err
	}

	basic := s.adopt(ctx, res, username)
	s.resetLockout(username)
	s.log.Info().Str("username", basic.Username).Str("role", string(basic.Role)).Msg("signed in")
	return basic, nil
}

// SignUp registers a new account. The session only adopts the returned token
// when AutoLoginOnSignUp is set.
func (s *SessionManager) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if msgs := validation.Check(in); len(msgs) > 0 {
		return nil, domain.ValidationError(msgs...)
	}

	res, err := s.backend.SignUp(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.cfg.AutoLoginOnSignUp && res.Token != "" {
		s.adopt(ctx, res, in.Username)
		s.log.Info().Str("username", in.Username).Msg("signed up and signed in")
	} else {
		s.log.Info().Str("username", in.Username).Msg("signed up")
	}
	return res, nil
}

// SignOut tears the session down. It never fails and is safe to call when
// already signed out; in-flight refreshes are cancelled and their results
// discarded.
func (s *SessionManager) SignOut(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	cancel := s.cancel
	username := ""
	if s.user != nil {
		username = s.user.Username
	}
	s.user, s.cred, s.cancel, s.sessionCtx = nil, nil, nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.backend.ClearBearer()
	s.clearStore(ctx)

	if username != "" {
		s.log.Info().Str("username", username).Msg("signed out")
	}
}

// RefreshProfile re-fetches the profile in the background. A failed refresh
// keeps the cached profile; a refresh that outlives its session is ignored.
// Returns nil when signed out.
func (s *SessionManager) RefreshProfile() *Task {
	s.mu.RLock()
	if s.cred == nil {
		s.mu.RUnlock()
		return nil
	}
	gen, token, parent := s.generation, s.cred.Token, s.sessionCtx
	s.mu.RUnlock()

	return startTask(parent, func(ctx context.Context) error {
		if s.cfg.RefreshTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.RefreshTimeout)
			defer cancel()
		}

		full, err := s.backend.GetProfile(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("profile refresh failed, keeping cached profile")
			return err
		}
		return s.commitProfile(ctx, gen, func(p *domain.UserProfile) { p.Merge(full) })
	})
}

// UpdatePreferences stores free-text dietary preferences.
func (s *SessionManager) UpdatePreferences(ctx context.Context, preferences string) (*domain.UserProfile, error) {
	cred, gen, err := s.active()
	if err != nil {
		return nil, err
	}
	full, err := s.backend.UpdatePreferences(ctx, cred.Token, strings.TrimSpace(preferences))
	if err != nil {
		return nil, err
	}
	if err := s.commitProfile(ctx, gen, func(p *domain.UserProfile) {
		p.Preferences = strings.TrimSpace(preferences)
		if full != nil {
			p.Merge(full)
		}
	}); err != nil {
		return nil, err
	}
	return s.CurrentUser(), nil
}

// UpdateEmail changes the account email.
func (s *SessionManager) UpdateEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	email = strings.TrimSpace(email)
	if msgs := validation.Var("email", email, "required,email"); len(msgs) > 0 {
		return nil, domain.ValidationError(msgs...)
	}
	cred, gen, err := s.active()
	if err != nil {
		return nil, err
	}
	if err := s.backend.UpdateEmail(ctx, cred.Token, email); err != nil {
		return nil, err
	}
	if err := s.commitProfile(ctx, gen, func(p *domain.UserProfile) { p.Email = email }); err != nil {
		return nil, err
	}
	return s.CurrentUser(), nil
}

// UpdatePassword changes the account password.
func (s *SessionManager) UpdatePassword(ctx context.Context, password string) error {
	if msgs := validation.Var("password", password, "required,min=6"); len(msgs) > 0 {
		return domain.ValidationError(msgs...)
	}
	cred, _, err := s.active()
	if err != nil {
		return err
	}
	return s.backend.UpdatePassword(ctx, cred.Token, password)
}

// SetPoints records a new points balance on the cached profile.
func (s *SessionManager) SetPoints(points int) {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()
	if err := s.commitProfile(context.Background(), gen, func(p *domain.UserProfile) {
		p.TotalPoints = max(points, 0)
	}); err != nil {
		s.log.Debug().Err(err).Msg("points update ignored")
	}
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionManager) CurrentUser() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Credential returns the active credential.
func (s *SessionManager) Credential() (domain.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return domain.Credential{}, false
	}
	return *s.cred, true
}

// IsAuthenticated reports whether a session is active.
func (s *SessionManager) IsAuthenticated() bool {
	_, ok := s.Credential()
	return ok
}

// RequireRole fails with Unauthorized when signed out and Forbidden when the
// session lacks role. ADMIN satisfies every role.
func (s *SessionManager) RequireRole(role domain.Role) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return domain.NewError(domain.ErrUnauthorized, "", nil)
	}
	if role == domain.RoleAdmin && s.cred.Role != domain.RoleAdmin {
		return domain.NewError(domain.ErrForbidden, "Admin access required.", nil)
	}
	return nil
}

// Lockout returns a copy of the lockout record for username.
func (s *SessionManager) Lockout(username string) domain.LockoutRecord {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	if rec, ok := s.lockouts[lockoutKey(username)]; ok {
		return *rec
	}
	return domain.LockoutRecord{}
}

// adopt installs a freshly issued credential, persists it, fetches and merges
// the full profile and returns the basic record.
func (s *SessionManager) adopt(ctx context.Context, res *domain.AuthResult, fallbackUsername string) *domain.UserProfile {
	username := strings.TrimSpace(res.Username)
	if username == "" {
		username = fallbackUsername
	}
	cred := domain.Credential{
		Token:     res.Token,
		Username:  username,
		Role:      domain.ParseRole(string(res.Role)),
		ExpiresAt: tokenExpiry(res.Token),
	}
	basic := domain.BasicProfile(cred)
	gen := s.begin(cred, basic.Clone())
	s.backend.SetBearer(cred.Token)

	if err := s.saveToken(ctx, gen, cred.Token); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist token")
	}

	full, err := s.backend.GetProfile(ctx, cred.Token)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("profile fetch failed, using basic profile")
		full = nil
	}
	if err := s.commitProfile(ctx, gen, func(p *domain.UserProfile) { p.Merge(full) }); err != nil {
		s.log.Debug().Err(err).Msg("sign-in superseded before profile merge")
	}
	return basic
}

// begin replaces the in-memory session and returns its generation.
func (s *SessionManager) begin(cred domain.Credential, user *domain.UserProfile) uint64 {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	prev := s.cancel
	s.generation++
	s.cred = &cred
	s.user = user
	s.cancel = cancel
	s.sessionCtx = ctx
	gen := s.generation
	s.mu.Unlock()

	if prev != nil {
		prev()
	}
	return gen
}

// saveToken persists token unless the session that issued it is gone.
func (s *SessionManager) saveToken(ctx context.Context, gen uint64, token string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	current := s.generation == gen
	s.mu.Unlock()
	if !current {
		return ErrSessionSuperseded
	}
	return s.store.SaveToken(ctx, token)
}

// commitProfile mutates and persists the cached profile if the session that
// started the change is still current.
func (s *SessionManager) commitProfile(ctx context.Context, gen uint64, mutate func(*domain.UserProfile)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.generation != gen || s.user == nil {
		s.mu.Unlock()
		return ErrSessionSuperseded
	}
	mutate(s.user)
	snapshot := s.user.Clone()
	s.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := s.store.SaveProfile(ctx, raw); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist profile")
	}
	return nil
}

func (s *SessionManager) active() (domain.Credential, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return domain.Credential{}, 0, domain.NewError(domain.ErrUnauthorized, "", nil)
	}
	return *s.cred, s.generation, nil
}

func (s *SessionManager) clearStore(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear session store")
	}
}

func (s *SessionManager) registerFailure(username string) bool {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	key := lockoutKey(username)
	rec, ok := s.lockouts[key]
	if !ok {
		rec = &domain.LockoutRecord{}
		s.lockouts[key] = rec
	}
	return rec.RegisterFailure(s.now(), s.cfg.Lockout)
}

func (s *SessionManager) resetLockout(username string) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	delete(s.lockouts, lockoutKey(username))
}

func lockoutKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func lockedMessage(remaining time.Duration) string {
	minutes := int(remaining.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "Too many failed attempts. Please try again in 1 minute."
	}
	return fmt.Sprintf("Too many failed attempts. Please try again in %d minutes.", minutes)
}

func credentialMessages(username, password string) []string {
	var msgs []string
	if username == "" {
		msgs = append(msgs, "username is required")
	}
	if password == "" {
		msgs = append(msgs, "password is required")
	}
	return msgs
}

// tokenExpiry reads the exp claim without verifying the signature; the client
// never holds the signing key. Opaque tokens have no expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
