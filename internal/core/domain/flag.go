package domain

import "time"

// FlagStatus represents the moderation state of a flag.
type FlagStatus string

const (
	FlagPending   FlagStatus = "PENDING"
	FlagResolved  FlagStatus = "RESOLVED"
	FlagDismissed FlagStatus = "DISMISSED"
)

// validTransitions defines the allowed moderation transitions. RESOLVED and
// DISMISSED are terminal; reopening happens out of band on the server.
var validTransitions = map[FlagStatus][]FlagStatus{
	FlagPending: {FlagResolved, FlagDismissed},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s FlagStatus) CanTransitionTo(next FlagStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further client-side transition is possible.
func (s FlagStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// ParseFlagStatus normalises a status string; unknown values map to PENDING.
func ParseFlagStatus(s string) FlagStatus {
	switch FlagStatus(upper(s)) {
	case FlagResolved:
		return FlagResolved
	case FlagDismissed:
		return FlagDismissed
	default:
		return FlagPending
	}
}

// ResolveAction is the admin decision applied to a pending flag.
type ResolveAction string

const (
	ActionRemove  ResolveAction = "REMOVE"
	ActionDismiss ResolveAction = "DISMISS"
)

// ParseResolveAction returns the action and whether it is recognised.
func ParseResolveAction(s string) (ResolveAction, bool) {
	switch ResolveAction(upper(s)) {
	case ActionRemove:
		return ActionRemove, true
	case ActionDismiss:
		return ActionDismiss, true
	default:
		return "", false
	}
}

// Outcome is the flag status an action leads to.
func (a ResolveAction) Outcome() FlagStatus {
	if a == ActionRemove {
		return FlagResolved
	}
	return FlagDismissed
}

// Flag is a user report against a review.
type Flag struct {
	ID         string     `json:"id"`
	ReviewID   string     `json:"reviewId"`
	Reason     string     `json:"reason"`
	Status     FlagStatus `json:"status"`
	AdminNotes string     `json:"adminNotes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// Resolve applies action to the flag, stamping the review time.
func (f *Flag) Resolve(action ResolveAction, notes string, at time.Time) error {
	next := action.Outcome()
	if !f.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	f.Status = next
	f.AdminNotes = notes
	f.ReviewedAt = &at
	return nil
}

// DashboardMetrics is the moderation overview counters.
type DashboardMetrics struct {
	PendingFlags      int64            `json:"pendingFlags"`
	PendingByReason   map[string]int64 `json:"pendingByReason"`
	PendingByKeywords map[string]int64 `json:"pendingByKeywords"`
}

// AdminAction is one entry of the moderation audit log.
type AdminAction struct {
	ID            string    `json:"id"`
	AdminUsername string    `json:"adminUsername"`
	Action        string    `json:"action"`
	TargetType    string    `json:"targetType"`
	TargetID      string    `json:"targetId"`
	EateryID      string    `json:"eateryId,omitempty"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
