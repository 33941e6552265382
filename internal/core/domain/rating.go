package domain

import "math"

// DefaultStarSlots is the number of slots in a rating display.
const DefaultStarSlots = 5

// Star is the fill state of one rating slot.
type Star string

const (
	StarFull  Star = "full"
	StarHalf  Star = "half"
	StarEmpty Star = "empty"
)

// StarsFor maps an average score onto slots display buckets. The fractional
// part selects a half slot when it lies in [0.25, 0.75) and rounds up to a full
// slot at 0.75 or above. Non-positive slots fall back to DefaultStarSlots;
// negative or NaN averages render as empty and averages beyond the slot count
// render as full.
func StarsFor(average float64, slots int) []Star {
	if slots <= 0 {
		slots = DefaultStarSlots
	}
	stars := make([]Star, slots)
	for i := range stars {
		stars[i] = StarEmpty
	}
	if math.IsNaN(average) || average <= 0 {
		return stars
	}
	if average >= float64(slots) {
		for i := range stars {
			stars[i] = StarFull
		}
		return stars
	}

	full := int(math.Floor(average))
	frac := average - float64(full)
	half := false
	switch {
	case frac >= 0.75:
		full++
	case frac >= 0.25:
		half = true
	}

	for i := 0; i < full && i < slots; i++ {
		stars[i] = StarFull
	}
	if half && full < slots {
		stars[full] = StarHalf
	}
	return stars
}

// CountStars tallies a rendered slot sequence.
func CountStars(stars []Star) (full, half, empty int) {
	for _, s := range stars {
		switch s {
		case StarFull:
			full++
		case StarHalf:
			half++
		default:
			empty++
		}
	}
	return full, half, empty
}
