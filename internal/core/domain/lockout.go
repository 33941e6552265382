package domain

import "time"

const (
	MaxFailedAttempts = 3
	LockoutWindow     = 30 * time.Minute
)

// LockoutPolicy configures when repeated login failures lock a username.
type LockoutPolicy struct {
	MaxAttempts int
	Window      time.Duration
}

// DefaultLockoutPolicy locks after three failures for thirty minutes.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{MaxAttempts: MaxFailedAttempts, Window: LockoutWindow}
}

// LockoutRecord tracks consecutive login failures for one username.
type LockoutRecord struct {
	FailedAttempts int        `json:"failedAttempts"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
}

// IsLocked reports whether the record rejects attempts at now.
func (r *LockoutRecord) IsLocked(now time.Time) bool {
	return r != nil && r.LockedUntil != nil && now.Before(*r.LockedUntil)
}

// RegisterFailure counts a failed attempt and locks the record once the
// policy threshold is reached. A lock that has already elapsed starts a fresh
// count. It returns true when this failure caused the lock.
func (r *LockoutRecord) RegisterFailure(now time.Time, p LockoutPolicy) bool {
	if r.LockedUntil != nil && !now.Before(*r.LockedUntil) {
		r.FailedAttempts = 0
		r.LockedUntil = nil
	}
	r.FailedAttempts++
	if r.FailedAttempts >= p.MaxAttempts {
		until := now.Add(p.Window)
		r.LockedUntil = &until
		return true
	}
	return false
}

// Reset clears the record after a successful login.
func (r *LockoutRecord) Reset() {
	r.FailedAttempts = 0
	r.LockedUntil = nil
}

// Remaining is the time left on the lock, zero when unlocked.
func (r *LockoutRecord) Remaining(now time.Time) time.Duration {
	if !r.IsLocked(now) {
		return 0
	}
	return r.LockedUntil.Sub(now)
}
