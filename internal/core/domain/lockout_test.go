package domain

import (
	"testing"
	"time"
)

func TestLockoutRecord_LocksOnThirdFailure(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultLockoutPolicy()
	var rec LockoutRecord

	if rec.RegisterFailure(now, policy) || rec.RegisterFailure(now, policy) {
		t.Fatalf("locked before threshold")
	}
	if rec.IsLocked(now) {
		t.Fatalf("expected unlocked after 2 failures")
	}
	if !rec.RegisterFailure(now, policy) {
		t.Fatalf("expected third failure to lock")
	}
	if !rec.IsLocked(now.Add(29 * time.Minute)) {
		t.Fatalf("expected locked inside window")
	}
	if rec.IsLocked(now.Add(30 * time.Minute)) {
		t.Fatalf("expected unlocked once window elapsed")
	}
	if got := rec.Remaining(now.Add(10 * time.Minute)); got != 20*time.Minute {
		t.Fatalf("expected 20m remaining, got %v", got)
	}
}

func TestLockoutRecord_ExpiredLockStartsFreshCount(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultLockoutPolicy()
	var rec LockoutRecord
	for i := 0; i < 3; i++ {
		rec.RegisterFailure(now, policy)
	}

	later := now.Add(time.Hour)
	rec.RegisterFailure(later, policy)
	if rec.FailedAttempts != 1 || rec.IsLocked(later) {
		t.Fatalf("expected fresh count after expiry, got %+v", rec)
	}
}

func TestLockoutRecord_Reset(t *testing.T) {
	now := time.Now()
	rec := LockoutRecord{FailedAttempts: 2}
	rec.RegisterFailure(now, DefaultLockoutPolicy())
	rec.Reset()
	if rec.FailedAttempts != 0 || rec.LockedUntil != nil {
		t.Fatalf("expected cleared record, got %+v", rec)
	}
}

func TestLockoutRecord_NilIsUnlocked(t *testing.T) {
	var rec *LockoutRecord
	if rec.IsLocked(time.Now()) {
		t.Fatalf("nil record must not be locked")
	}
}
