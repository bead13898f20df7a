package metricsaggregator

// Verdict is the categorical classification of a trace's groundedness score.
type Verdict string

const (
	VerdictGrounded          Verdict = "Grounded"
	VerdictPartiallyGrounded Verdict = "Partially Grounded"
	VerdictHallucination     Verdict = "Hallucination"
)

// Verdict classification thresholds. ClassifyVerdict is the single source
// of truth for these: the overview metric cards, the trace-analysis view,
// and every export must go through it rather than repeat the literals.
const (
	groundedThreshold          = 0.8
	partiallyGroundedThreshold = 0.5
)

// ClassifyVerdict maps a groundedness score to a verdict. Lower bounds are
// inclusive: a score of exactly 0.8 is Grounded, exactly 0.5 is Partially
// Grounded.
func ClassifyVerdict(score float64) Verdict {
	switch {
	case score >= groundedThreshold:
		return VerdictGrounded
	case score >= partiallyGroundedThreshold:
		return VerdictPartiallyGrounded
	default:
		return VerdictHallucination
	}
}
