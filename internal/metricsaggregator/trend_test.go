package metricsaggregator

import (
	"testing"
	"time"
)

func TestTrendSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := TrendSeries(start, 30)

	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}
	if !points[0].Date.Equal(start) {
		t.Errorf("first date = %v, want %v", points[0].Date, start)
	}
	if !points[29].Date.Equal(start.AddDate(0, 0, 29)) {
		t.Errorf("last date = %v, want %v", points[29].Date, start.AddDate(0, 0, 29))
	}

	// i=0: frac 0, wobble terms 0.02*(-2), 0.03*(-1), 0.01*(-3).
	if got, want := points[0].Groundedness, 0.85-0.04; !almostEqual(got, want) {
		t.Errorf("groundedness[0] = %f, want %f", got, want)
	}
	if got, want := points[0].Relevance, 0.82-0.03; !almostEqual(got, want) {
		t.Errorf("relevance[0] = %f, want %f", got, want)
	}
	if got, want := points[0].Coherence, 0.88-0.03; !almostEqual(got, want) {
		t.Errorf("coherence[0] = %f, want %f", got, want)
	}

	// Deterministic: two calls with the same inputs produce the same series.
	again := TrendSeries(start, 30)
	for i := range points {
		if points[i] != again[i] {
			t.Fatalf("series not deterministic at index %d", i)
		}
	}
}

func TestTrendSeriesNonPositiveDays(t *testing.T) {
	for _, days := range []int{0, -5} {
		points := TrendSeries(time.Now(), days)
		if len(points) != 0 {
			t.Errorf("TrendSeries(_, %d) returned %d points, want 0", days, len(points))
		}
	}
}
