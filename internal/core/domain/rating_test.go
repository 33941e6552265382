package domain

import (
	"math"
	"testing"
)

func TestStarsFor_Boundaries(t *testing.T) {
	cases := []struct {
		average           float64
		full, half, empty int
	}{
		{0, 0, 0, 5},
		{5, 5, 0, 0},
		{7.2, 5, 0, 0},
		{3.6, 3, 1, 1},
		{4.4, 4, 1, 0},
		{3.24, 3, 0, 2},
		{3.25, 3, 1, 1},
		{3.74, 3, 1, 1},
		{3.75, 4, 0, 1},
		{4.9, 5, 0, 0},
		{0.2, 0, 0, 5},
		{0.5, 0, 1, 4},
		{-1, 0, 0, 5},
	}
	for _, tc := range cases {
		full, half, empty := CountStars(StarsFor(tc.average, 5))
		if full != tc.full || half != tc.half || empty != tc.empty {
			t.Fatalf("StarsFor(%v): expected %d/%d/%d, got %d/%d/%d",
				tc.average, tc.full, tc.half, tc.empty, full, half, empty)
		}
	}
}

func TestStarsFor_HalfSlotFollowsFullSlots(t *testing.T) {
	stars := StarsFor(2.5, 5)
	want := []Star{StarFull, StarFull, StarHalf, StarEmpty, StarEmpty}
	for i := range want {
		if stars[i] != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], stars[i])
		}
	}
}

func TestStarsFor_DefaultSlots(t *testing.T) {
	if n := len(StarsFor(3, 0)); n != DefaultStarSlots {
		t.Fatalf("expected %d slots, got %d", DefaultStarSlots, n)
	}
	if n := len(StarsFor(3, 10)); n != 10 {
		t.Fatalf("expected 10 slots, got %d", n)
	}
}

func TestStarsFor_NaN(t *testing.T) {
	_, _, empty := CountStars(StarsFor(math.NaN(), 5))
	if empty != 5 {
		t.Fatalf("expected all empty for NaN, got %d empty", empty)
	}
}

func TestStarsFor_Monotonic(t *testing.T) {
	prevFull := 0
	for a := 0.0; a <= 5.0; a += 0.01 {
		full, _, _ := CountStars(StarsFor(a, 5))
		if full < prevFull {
			t.Fatalf("full count dropped from %d to %d at average %.2f", prevFull, full, a)
		}
		prevFull = full
	}
}

func TestSummarizeReviews(t *testing.T) {
	reviews := []Review{
		{HealthScore: 5, HygieneScore: 4},
		{HealthScore: 5, HygieneScore: 4},
		{HealthScore: 4, HygieneScore: 3},
		{HealthScore: 4, HygieneScore: 5},
		{HealthScore: 4, HygieneScore: 4},
	}
	sum := SummarizeReviews(reviews)
	if sum.TotalReviews != 5 {
		t.Fatalf("expected 5 reviews, got %d", sum.TotalReviews)
	}
	if sum.AverageHealthScore != 4.4 {
		t.Fatalf("expected health 4.4, got %v", sum.AverageHealthScore)
	}
	if sum.AverageHygieneScore != 4 {
		t.Fatalf("expected hygiene 4.0, got %v", sum.AverageHygieneScore)
	}

	full, half, empty := CountStars(StarsFor(sum.AverageHealthScore, 5))
	if full != 4 || half != 1 || empty != 0 {
		t.Fatalf("expected 4 full + 1 half, got %d/%d/%d", full, half, empty)
	}
}

func TestSummarizeReviews_Empty(t *testing.T) {
	if sum := SummarizeReviews(nil); sum != (RatingSummary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
	if avg := Average(nil); avg != 0 {
		t.Fatalf("expected 0 average, got %v", avg)
	}
}
