package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// flexID accepts numeric and string identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// flexTime accepts RFC 3339 and zone-less local date-times. Unparseable values
// decode as the zero time.
type flexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*f = flexTime{}
		return nil
	}
	*f = flexTime(parseTime(s))
	return nil
}

func (f flexTime) Time() time.Time { return time.Time(f) }

func (f *flexTime) Ptr() *time.Time {
	if f == nil || time.Time(*f).IsZero() {
		return nil
	}
	t := time.Time(*f)
	return &t
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// flexInt accepts numbers and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = flexInt(int(v))
	return nil
}

type authWire struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

func (w authWire) domain() *domain.AuthResult {
	return &domain.AuthResult{
		Token:    w.Token,
		Username: w.Username,
		Role:     domain.ParseRole(w.Role),
		Message:  w.Message,
	}
}

type profileWire struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Preferences string  `json:"preferences"`
	TotalPoints flexInt `json:"totalPoints"`
	Points      flexInt `json:"points"`
}

func (w profileWire) domain() *domain.UserProfile {
	points := w.TotalPoints
	if points == 0 {
		points = w.Points
	}
	return &domain.UserProfile{
		Username:    w.Username,
		Email:       w.Email,
		Role:        domain.ParseRole(w.Role),
		Preferences: w.Preferences,
		TotalPoints: max(int(points), 0),
		Complete:    true,
	}
}

type reviewWire struct {
	ID           flexID   `json:"id"`
	EateryID     flexID   `json:"eateryId"`
	EateryName   string   `json:"eateryName"`
	UserID       flexID   `json:"userId"`
	AuthorAlias  string   `json:"authorAlias"`
	HealthScore  flexInt  `json:"healthScore"`
	HygieneScore flexInt  `json:"hygieneScore"`
	TextFeedback string   `json:"textFeedback"`
	Photos       []string `json:"photos"`
	CreatedAt    flexTime `json:"createdAt"`
	UpdatedAt    flexTime `json:"updatedAt"`
	IsOwnReview  bool     `json:"isOwnReview"`
}

func (w reviewWire) domain(entityID string) domain.Review {
	eid := string(w.EateryID)
	if eid == "" {
		eid = entityID
	}
	return domain.Review{
		ID:           string(w.ID),
		AuthorID:     string(w.UserID),
		AuthorAlias:  w.AuthorAlias,
		EntityID:     eid,
		EntityName:   w.EateryName,
		HealthScore:  int(w.HealthScore),
		HygieneScore: int(w.HygieneScore),
		TextFeedback: w.TextFeedback,
		Photos:       w.Photos,
		CreatedAt:    w.CreatedAt.Time(),
		UpdatedAt:    w.UpdatedAt.Time(),
		IsOwnReview:  w.IsOwnReview,
	}
}

// reviewEnvelope is the create/update answer: {message, review}.
type reviewEnvelope struct {
	Message string      `json:"message"`
	Review  *reviewWire `json:"review"`
}

type ratingsWire struct {
	AverageHealthScore  *float64 `json:"averageHealthScore"`
	AverageHygieneScore *float64 `json:"averageHygieneScore"`
	TotalReviews        flexInt  `json:"totalReviews"`
}

func (w ratingsWire) domain() domain.RatingSummary {
	var s domain.RatingSummary
	if w.AverageHealthScore != nil {
		s.AverageHealthScore = *w.AverageHealthScore
	}
	if w.AverageHygieneScore != nil {
		s.AverageHygieneScore = *w.AverageHygieneScore
	}
	s.TotalReviews = max(int(w.TotalReviews), 0)
	return s
}

type flagWire struct {
	ID         flexID    `json:"id"`
	ReviewID   flexID    `json:"reviewId"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"adminNotes"`
	CreatedAt  flexTime  `json:"createdAt"`
	ReviewedAt *flexTime `json:"reviewedAt"`
}

func (w flagWire) domain() domain.Flag {
	return domain.Flag{
		ID:         string(w.ID),
		ReviewID:   string(w.ReviewID),
		Reason:     w.Reason,
		Status:     domain.ParseFlagStatus(w.Status),
		AdminNotes: w.AdminNotes,
		CreatedAt:  w.CreatedAt.Time(),
		ReviewedAt: w.ReviewedAt.Ptr(),
	}
}

type actionWire struct {
	ID            flexID   `json:"id"`
	AdminUsername string   `json:"adminUsername"`
	ActionType    string   `json:"actionType"`
	Action        string   `json:"action"`
	TargetType    string   `json:"targetType"`
	TargetID      flexID   `json:"targetId"`
	EateryID      flexID   `json:"eateryId"`
	Details       string   `json:"details"`
	Description   string   `json:"description"`
	Timestamp     flexTime `json:"timestamp"`
}

func (w actionWire) domain() domain.AdminAction {
	action := w.ActionType
	if action == "" {
		action = w.Action
	}
	details := w.Details
	if details == "" {
		details = w.Description
	}
	return domain.AdminAction{
		ID:            string(w.ID),
		AdminUsername: w.AdminUsername,
		Action:        action,
		TargetType:    w.TargetType,
		TargetID:      string(w.TargetID),
		EateryID:      string(w.EateryID),
		Details:       details,
		Timestamp:     w.Timestamp.Time(),
	}
}

type metricsWire struct {
	PendingFlags      int64            `json:"pendingFlags"`
	PendingByReason   map[string]int64 `json:"pendingByReason"`
	PendingByKeywords map[string]int64 `json:"pendingByKeywords"`
}

func (w metricsWire) domain() *domain.DashboardMetrics {
	m := &domain.DashboardMetrics{
		PendingFlags:      w.PendingFlags,
		PendingByReason:   w.PendingByReason,
		PendingByKeywords: w.PendingByKeywords,
	}
	if m.PendingByReason == nil {
		m.PendingByReason = map[string]int64{}
	}
	if m.PendingByKeywords == nil {
		m.PendingByKeywords = map[string]int64{}
	}
	return m
}

type recommendationWire struct {
	ID             flexID   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	FullAddress    string   `json:"fullAddress"`
	Tags           []string `json:"tags"`
	DietaryTags    []string `json:"dietaryTags"`
	Description    string   `json:"description"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Distance       *float64 `json:"distance"`
	Reason         string   `json:"reason"`
	Score          *float64 `json:"score"`
	AverageHealth  *float64 `json:"averageHealth"`
	AverageHygiene *float64 `json:"averageHygiene"`
	ReviewCount    flexInt  `json:"reviewCount"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func (w recommendationWire) domain() domain.Recommendation {
	tags := w.Tags
	if len(tags) == 0 {
		tags = w.DietaryTags
	}
	addr := w.Address
	if addr == "" {
		addr = w.FullAddress
	}
	return domain.Recommendation{
		ID:             string(w.ID),
		Name:           w.Name,
		Address:        addr,
		Tags:           tags,
		Description:    w.Description,
		Latitude:       deref(w.Latitude),
		Longitude:      deref(w.Longitude),
		Distance:       deref(w.Distance),
		Reason:         w.Reason,
		Score:          deref(w.Score),
		AverageHealth:  deref(w.AverageHealth),
		AverageHygiene: deref(w.AverageHygiene),
		ReviewCount:    max(int(w.ReviewCount), 0),
	}
}

type rewardWire struct {
	ID             flexID  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PointsRequired flexInt `json:"pointsRequired"`
	Active         *bool   `json:"active"`
}

func (w rewardWire) domain() domain.Reward {
	active := true
	if w.Active != nil {
		active = *w.Active
	}
	return domain.Reward{
		ID:             string(w.ID),
		Name:           w.Name,
		Description:    w.Description,
		PointsRequired: max(int(w.PointsRequired), 0),
		Active:         active,
	}
}

type pointsWire struct {
	Username       string   `json:"username"`
	TotalPoints    flexInt  `json:"totalPoints"`
	Points         flexInt  `json:"points"`
	RedeemedPoints flexInt  `json:"redeemedPoints"`
	LastUpdated    flexTime `json:"lastUpdated"`
}

func (w pointsWire) domain() *domain.PointsBalance {
	total := w.TotalPoints
	if total == 0 {
		total = w.Points
	}
	return &domain.PointsBalance{
		Username:       w.Username,
		TotalPoints:    max(int(total), 0),
		RedeemedPoints: max(int(w.RedeemedPoints), 0),
		LastUpdated:    w.LastUpdated.Time(),
	}
}

type redemptionWire struct {
	RewardName string  `json:"rewardName"`
	PointsUsed flexInt `json:"pointsUsed"`
	PointsLeft flexInt `json:"pointsLeft"`
	Message    string  `json:"message"`
}

func (w redemptionWire) domain(rewardID string) *domain.Redemption {
	return &domain.Redemption{
		RewardID:   rewardID,
		RewardName: w.RewardName,
		PointsUsed: int(w.PointsUsed),
		PointsLeft: max(int(w.PointsLeft), 0),
		Message:    w.Message,
	}
}
