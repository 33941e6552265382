package domain

import "time"

// Reward is a catalog item that can be exchanged for points.
type Reward struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PointsRequired int    `json:"pointsRequired"`
	Active         bool   `json:"active"`
}

// RedeemableWith is the client-side pre-flight gate. The backend stays the
// authority on whether a redemption succeeds.
func (r Reward) RedeemableWith(points int) bool {
	return r.Active && points >= r.PointsRequired
}

// PointsBalance is the signed-in user's points account.
type PointsBalance struct {
	Username       string    `json:"username"`
	TotalPoints    int       `json:"totalPoints"`
	RedeemedPoints int       `json:"redeemedPoints"`
	LastUpdated    time.Time `json:"lastUpdated,omitempty"`
}

// Redemption is the result of a successful reward redemption.
type Redemption struct {
	RewardID   string `json:"rewardId"`
	RewardName string `json:"rewardName,omitempty"`
	PointsUsed int    `json:"pointsUsed"`
	PointsLeft int    `json:"pointsLeft"`
	Message    string `json:"message,omitempty"`
}
