package metricsaggregator

import "time"

// TrendPoint is one day of the synthetic performance-trend series shown on
// the trends view.
type TrendPoint struct {
	Date         time.Time `json:"date"`
	Groundedness float64   `json:"groundedness"`
	Relevance    float64   `json:"relevance"`
	Coherence    float64   `json:"coherence"`
}

// TrendSeries generates a deterministic daily trend series of the three
// quality metrics: a slow upward drift plus a small periodic wobble. The
// series is synthetic demo data, not derived from stored rows. days must be
// positive; non-positive input yields an empty slice.
func TrendSeries(start time.Time, days int) []TrendPoint {
	if days <= 0 {
		return []TrendPoint{}
	}

	points := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		frac := float64(i) / float64(days)
		points = append(points, TrendPoint{
			Date:         start.AddDate(0, 0, i),
			Groundedness: 0.85 + 0.08*frac + 0.02*float64(i%5-2),
			Relevance:    0.82 + 0.05*frac + 0.03*float64(i%3-1),
			Coherence:    0.88 + 0.04*frac + 0.01*float64(i%7-3),
		})
	}
	return points
}
