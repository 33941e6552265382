package domain

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies within WGS84 bounds.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Recommendation is one ranked eatery suggestion.
type Recommendation struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Description    string   `json:"description,omitempty"`
	Latitude       float64  `json:"latitude,omitempty"`
	Longitude      float64  `json:"longitude,omitempty"`
	Distance       float64  `json:"distance,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	Score          float64  `json:"score,omitempty"`
	AverageHealth  float64  `json:"averageHealth"`
	AverageHygiene float64  `json:"averageHygiene"`
	ReviewCount    int      `json:"reviewCount"`
}

// Truncate returns at most n items of list.
func Truncate(list []Recommendation, n int) []Recommendation {
	if n < 0 || len(list) <= n {
		return list
	}
	return list[:n]
}
