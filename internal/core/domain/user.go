package domain

import (
	"strings"
	"time"
)

// Role is the authorisation level carried by a credential.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalises a backend role string. Anything unrecognised, including
// the empty string, is treated as USER.
func ParseRole(s string) Role {
	r := upper(s)
	r = strings.TrimPrefix(r, "ROLE_")
	if Role(r) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Credential is the bearer token issued at login and the identity it names.
type Credential struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the credential carries an expiry that has passed.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// UserProfile is the signed-in user as shown to the UI. Complete is false for
// the basic record that exists between login and the profile fetch.
type UserProfile struct {
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Role        Role   `json:"role"`
	Preferences string `json:"preferences,omitempty"`
	TotalPoints int    `json:"totalPoints"`
	Token       string `json:"token,omitempty"`
	Complete    bool   `json:"complete"`
}

// BasicProfile builds the transient record available straight after login.
func BasicProfile(c Credential) *UserProfile {
	return &UserProfile{Username: c.Username, Role: c.Role, Token: c.Token}
}

// Merge overlays the fields of a fetched profile onto p. Identity fields
// (username, role, token) stay those of the credential.
func (p *UserProfile) Merge(full *UserProfile) {
	if full == nil {
		return
	}
	if full.Email != "" {
		p.Email = full.Email
	}
	p.Preferences = full.Preferences
	p.TotalPoints = max(full.TotalPoints, 0)
	p.Complete = true
}

// Clone returns a copy safe to hand to callers.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// SignUpInput carries the registration payload.
type SignUpInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResult is the backend answer to login and signup.
type AuthResult struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Message  string `json:"message,omitempty"`
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
