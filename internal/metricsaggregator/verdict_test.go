package metricsaggregator

import "testing"

func TestClassifyVerdict(t *testing.T) {
	tests := []struct {
		score float64
		want  Verdict
	}{
		{0.95, VerdictGrounded},
		{0.65, VerdictPartiallyGrounded},
		{0.35, VerdictHallucination},
		// Lower bounds are inclusive.
		{0.8, VerdictGrounded},
		{0.5, VerdictPartiallyGrounded},
		{0.7999, VerdictPartiallyGrounded},
		{0.4999, VerdictHallucination},
		{0.0, VerdictHallucination},
		{1.0, VerdictGrounded},
	}
	for _, tc := range tests {
		if got := ClassifyVerdict(tc.score); got != tc.want {
			t.Errorf("ClassifyVerdict(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
