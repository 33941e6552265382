package domain

import (
	"math"
	"time"
)

const (
	MinScore       = 1
	MaxScore       = 5
	MaxReviewPhoto = 3
)

// Review is one user's rating of one eatery.
type Review struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId,omitempty"`
	AuthorAlias  string    `json:"authorAlias,omitempty"`
	EntityID     string    `json:"entityId"`
	EntityName   string    `json:"entityName,omitempty"`
	HealthScore  int       `json:"healthScore"`
	HygieneScore int       `json:"hygieneScore"`
	TextFeedback string    `json:"textFeedback"`
	Photos       []string  `json:"photos,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	IsOwnReview  bool      `json:"isOwnReview"`
}

// ReviewInput is the author-editable part of a review.
type ReviewInput struct {
	HealthScore  int      `json:"healthScore"  validate:"min=1,max=5"`
	HygieneScore int      `json:"hygieneScore" validate:"min=1,max=5"`
	TextFeedback string   `json:"textFeedback" validate:"required"`
	Photos       []string `json:"photos,omitempty" validate:"max=3,dive,required"`
}

// RatingSummary aggregates the scores of an eatery's reviews.
type RatingSummary struct {
	AverageHealthScore  float64 `json:"averageHealthScore"`
	AverageHygieneScore float64 `json:"averageHygieneScore"`
	TotalReviews        int     `json:"totalReviews"`
}

// SummarizeReviews recomputes the summary locally, rounding averages to one
// decimal place.
func SummarizeReviews(reviews []Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{}
	}
	health := make([]int, 0, len(reviews))
	hygiene := make([]int, 0, len(reviews))
	for _, r := range reviews {
		health = append(health, r.HealthScore)
		hygiene = append(hygiene, r.HygieneScore)
	}
	return RatingSummary{
		AverageHealthScore:  roundTenth(Average(health)),
		AverageHygieneScore: roundTenth(Average(hygiene)),
		TotalReviews:        len(reviews),
	}
}

// Average returns the arithmetic mean of scores, 0 for an empty slice.
func Average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
